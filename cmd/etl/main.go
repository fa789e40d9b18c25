// cmd/etl/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/config"
	"github.com/retailops/etl/pkg/export"
	"github.com/retailops/etl/pkg/loader"
	"github.com/retailops/etl/pkg/model"
	"github.com/retailops/etl/pkg/pipeline"
	"github.com/retailops/etl/pkg/repair"
	"github.com/retailops/etl/pkg/sink"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pg, err := sink.NewPostgresSink(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	repairer := repair.New(logger.Named("repair"))
	exporter := export.NewExporter(logger)

	var (
		products  *model.Table
		employees *model.Table
		sales     *model.Table
		lookup    model.CategoryLookup
		summaries []repair.TableSummary
	)

	repaired := func(t *model.Table, s repair.TableSummary) {
		s.LogSummary(logger)
		summaries = append(summaries, s)
	}

	summary := pipeline.NewRunner(logger).
		Add("repair products", func(ctx context.Context) error {
			t, err := loader.ReadTable(cfg.ProductsPath, loader.TableSpec{
				Name:     "products",
				KeyField: repair.ProductKeyColumn,
				Columns:  repair.ProductColumns,
			}, logger)
			if err != nil {
				return err
			}
			repaired(t, repairer.RepairProducts(t))
			products = t
			lookup = model.BuildCategoryLookup(t, repair.ProductCategoryColumn)
			return nil
		}).
		Add("repair employees", func(ctx context.Context) error {
			t, err := loader.ReadTable(cfg.EmployeesPath, loader.TableSpec{
				Name:     "employees",
				KeyField: repair.EmployeeKeyColumn,
				Columns:  repair.EmployeeColumns,
			}, logger)
			if err != nil {
				return err
			}
			repaired(t, repairer.RepairEmployees(t))
			employees = t
			return nil
		}).
		Add("repair sales", func(ctx context.Context) error {
			t, err := loader.ReadTable(cfg.SalesPath, loader.TableSpec{
				Name:     "sales",
				KeyField: repair.SaleKeyColumn,
				Columns:  repair.SaleColumns,
			}, logger)
			if err != nil {
				return err
			}
			repaired(t, repairer.RepairSales(t, lookup))
			sales = t
			return nil
		}).
		Add("persist products", persistStage(pg, &products, sink.ProductsSchema)).
		Add("persist employees", persistStage(pg, &employees, sink.EmployeesSchema)).
		Add("persist sales", persistStage(pg, &sales, sink.SalesSchema)).
		Add("export parquet", func(ctx context.Context) error {
			return exporter.WriteParquet(cfg.ParquetDir, products, employees, sales)
		}).
		Add("write report", func(ctx context.Context) error {
			return exporter.WriteReport(cfg.ReportPath, summaries...)
		}).
		Run(ctx)

	if summary.Failed {
		last := summary.Stages[len(summary.Stages)-1]
		return fmt.Errorf("stage %q failed (%s): %w", last.Name, last.Category, last.Err)
	}
	return nil
}

func persistStage(pg *sink.PostgresSink, t **model.Table, schema sink.TableSchema) pipeline.StageFunc {
	return func(ctx context.Context) error {
		if err := pg.EnsureTable(ctx, schema); err != nil {
			return err
		}
		_, err := pg.Load(ctx, *t, schema)
		return err
	}
}
