package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ortografia/internal/config"
	"ortografia/internal/database"
	"ortografia/internal/database/migrations"
	"ortografia/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")
	importYes := importCmd.Bool("yes", false, "Skip the confirmation prompt for -clear")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	if err := db.RunMigrations(migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	backupService := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput, *importClear, *importYes)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Msg("failed to create output directory")
		}
	}

	if err := backupService.Export(outputPath); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	if info, err := os.Stat(outputPath); err == nil {
		log.Info().Str("path", outputPath).Float64("size_mb", float64(info.Size())/1024/1024).Msg("export complete")
	}
}

func handleImport(backupService *service.BackupService, inputPath string, clearData, skipConfirm bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatal().Str("path", inputPath).Msg("input file does not exist")
	}

	if clearData {
		if !skipConfirm {
			fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
			var confirmation string
			fmt.Scanln(&confirmation)
			if confirmation != "yes" {
				log.Info().Msg("import cancelled")
				return
			}
		}

		if err := backupService.Clear(); err != nil {
			log.Fatal().Err(err).Msg("failed to clear database")
		}
	}

	if err := backupService.Import(inputPath); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().Msg("import complete")
}

func printUsage() {
	fmt.Println("Ortografía Database Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export database to JSON file")
	fmt.Println("  backup import [options]    Import database from JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println("  -yes              Do not ask for confirmation when clearing")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./ortografia.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
