package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/storefront"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// queryOptions flags de un subcomando; req se llena directamente desde los flags.
type queryOptions struct {
	file    string
	storeID string
	format  string
	verbose bool
	req     dto.CatalogQueryRequest
}

// staticSource sirve siempre el mismo volcado, leído una sola vez del disco.
type staticSource []entity.RawRecord

func (s staticSource) FetchRecords(context.Context, string, entity.RecordKind) ([]entity.RawRecord, error) {
	return s, nil
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogq",
		Short:         "Filtra, ordena y resume productos o pedidos de un volcado JSON",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		newKindCmd(entity.KindProduct, "products", "Consulta productos"),
		newKindCmd(entity.KindOrder, "orders", "Consulta pedidos"),
	)
	return root
}

func newKindCmd(kind entity.RecordKind, use, short string) *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, kind, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "volcado JSON (array o sobre paginado); - lee de stdin")
	f.StringVar(&opts.storeID, "store", "local", "id de tienda que se muestra en la salida")
	f.StringVar(&opts.format, "format", formatJSON, "salida: json | table")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log de depuración en stderr")

	f.StringVar(&opts.req.Search, "search", "", "texto libre (sin distinguir mayúsculas ni tildes)")
	f.StringVar(&opts.req.Status, "status", "", "estados separados por coma")
	f.StringVar(&opts.req.Category, "category", "", "categorías separadas por coma")
	f.StringVar(&opts.req.Price, "price", "", "rangos: free,0-25000,25000-50000,50000-100000,100000+")
	f.StringVar(&opts.req.CreatedFrom, "from", "", "creados desde (YYYY-MM-DD)")
	f.StringVar(&opts.req.CreatedTo, "to", "", "creados hasta (YYYY-MM-DD, inclusive)")
	f.StringVar(&opts.req.Sort, "sort", "", "name | createdAt | price | quantity | status")
	f.StringVar(&opts.req.Dir, "dir", "", "asc | desc")
	f.StringVar(&opts.req.Stats, "stats", "", "full | filtered")
	f.IntVar(&opts.req.Limit, "limit", 0, "tamaño de página; 0 = todos")
	f.IntVar(&opts.req.Offset, "offset", 0, "desplazamiento")
	if kind == entity.KindOrder {
		f.StringVar(&opts.req.PaymentMethod, "payment", "", "medios de pago separados por coma")
	}
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runQuery(cmd *cobra.Command, kind entity.RecordKind, opts *queryOptions) error {
	if opts.format != formatJSON && opts.format != formatTable {
		return fmt.Errorf("--format debe ser %s o %s", formatJSON, formatTable)
	}

	body, err := readInput(cmd.InOrStdin(), opts.file)
	if err != nil {
		return err
	}
	raws, err := storefront.DecodeRecords(body)
	if err != nil {
		return fmt.Errorf("leer %s: %w", opts.file, err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: cmd.ErrOrStderr()})

	req := opts.req
	if req.Limit == 0 && len(raws) > 0 {
		req.Limit = len(raws)
	}
	uc := appcatalog.NewQueryUseCase(staticSource(raws), nil, nil, log)
	resp, err := uc.Query(cmd.Context(), opts.storeID, kind, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == formatTable {
		return renderTable(out, kind, resp)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("leer stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	return b, nil
}
