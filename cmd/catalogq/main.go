// Command catalogq ejecuta consultas del catálogo sobre un volcado JSON local
// (mismo formato que la API de la tienda), sin servidor ni base de datos.
//
//	catalogq products --file productos.json --status active --sort price --dir desc
//	catalogq orders -f pedidos.json --payment mobile_money --format table
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
