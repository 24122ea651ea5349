package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mmfinance/installment-calc/internal/config"
	"github.com/mmfinance/installment-calc/internal/server"
	"github.com/mmfinance/installment-calc/pkg/constants"
	"github.com/mmfinance/installment-calc/pkg/output"
	"github.com/mmfinance/installment-calc/pkg/pricing"
	"github.com/mmfinance/installment-calc/pkg/validation"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	price := flag.String("price", "", "product price in the selected currency")
	deposit := flag.String("deposit", "", "deposit amount or percentage")
	depositMode := flag.String("deposit-mode", "", "deposit semantics override: amount, percent")
	currencyCode := flag.String("currency", constants.BaseCurrency, "currency of the entered price and deposit")
	term := flag.Int("term", 3, "repayment term in months")
	method := flag.String("method", "Salary Deduction", "repayment method")
	bank := flag.String("bank", "", "bank option where the method requires one")
	strategyFlag := flag.String("strategy", "", "pricing strategy override: flat, flat-fee, amortized, amortized-annual, arbitrage")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "serve the quote API over HTTP instead of computing one quote")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *serve {
		runServer(logger, conf, *serverConfigLocation)
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Determine strategy (CLI override takes precedence over config)
	strategyName := conf.Pricing.Strategy
	if *strategyFlag != "" {
		strategyName = *strategyFlag
	}
	strategy, err := pricing.NewStrategy(strategyName)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	exchange, termRates, fees, err := conf.Tables()
	if err != nil {
		logger.Fatal("failed to resolve rate tables",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	mode := *depositMode
	if mode == "" {
		mode = conf.Pricing.DepositMode
	}

	input := pricing.LoanInput{
		Term:          *term,
		Method:        *method,
		Bank:          *bank,
		Currency:      *currencyCode,
		ProductPrice:  *price,
		DepositAmount: *deposit,
		DepositMode:   mode,
	}

	err = validation.ValidateLoanInput(input, exchange, termRates)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	engine := pricing.NewEngine(strategy, exchange, termRates, fees, logger)
	result, err := engine.Compute(input)
	if err != nil {
		logger.Fatal("failed to compute quote",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(strategy.Name(), input, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(strategy.Name(), input, result)
	}
}

func runServer(logger *zap.Logger, conf *config.Configuration, serverConfigLocation string) {
	serverConf, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler, err := server.NewHandler(logger, conf, serverConf.BodySizeBytes(), version)
	if err != nil {
		logger.Fatal("failed to construct quote API handler",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	logger.Info("serving quote API",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
	)

	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("quote API server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
