package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Garcia3528/notalfiscalIA/internal/catalog"
	"github.com/Garcia3528/notalfiscalIA/internal/classify"
	"github.com/Garcia3528/notalfiscalIA/internal/cli"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
	"github.com/Garcia3528/notalfiscalIA/internal/pdftext"
	"github.com/Garcia3528/notalfiscalIA/internal/service"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify an expense from a PDF invoice or manual fields",
		Example: `  notafiscal classify --pdf nota.pdf
  notafiscal classify --supplier "Posto Shell" --description "Diesel S10" --value 450.00
  notafiscal classify batch ./notas/`,
		RunE: runClassify,
	}

	cmd.Flags().String("pdf", "", "path to a PDF invoice")
	cmd.Flags().String("supplier", "", "supplier name")
	cmd.Flags().String("tax-id", "", "supplier CNPJ/CPF")
	cmd.Flags().String("description", "", "expense description")
	cmd.Flags().Float64("value", 0, "total value")
	cmd.Flags().Bool("no-ai", false, "skip the AI strategy")
	cmd.Flags().Bool("prefer-ai", false, "try the AI strategy before the offline strategies")
	cmd.Flags().Bool("json", false, "print the result as JSON")

	cmd.AddCommand(classifyBatchCmd())
	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	pdfPath, _ := cmd.Flags().GetString("pdf")
	jsonOut, _ := cmd.Flags().GetBool("json")

	var input model.ClassificationInput
	if pdfPath != "" {
		text, err := pdftext.ExtractText(pdfPath)
		if err != nil {
			return err
		}
		input = pdftext.ParseInvoice(text)
	} else {
		input.Supplier.Name, _ = cmd.Flags().GetString("supplier")
		input.Supplier.TaxID, _ = cmd.Flags().GetString("tax-id")
		input.RawDescription, _ = cmd.Flags().GetString("description")
		input.TotalValue, _ = cmd.Flags().GetFloat64("value")
	}

	if input.Supplier.Name == "" && input.RawDescription == "" {
		return fmt.Errorf("nothing to classify: provide --pdf, or --supplier / --description")
	}

	orch, store, err := buildOrchestrator(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	result := orch.Classify(ctx, input)

	resolver := catalog.New(store, nil)
	expenseType, err := resolver.ResolveOrCreate(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to resolve expense type: %w", err)
	}

	if jsonOut {
		return printResultJSON(cmd, input, result, expenseType)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatResult(result))
	fmt.Fprintf(cmd.OutOrStdout(), "Tipo de despesa: %s (#%d)\n", expenseType.Name, expenseType.ID)
	return nil
}

func classifyBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir, pdf or jsonl>...",
		Short: "Classify many invoices: PDF files, directories of PDFs, or JSONL input files",
		Long: `Classifies a batch of invoices and writes one JSON result per line.
Arguments may be PDF files, directories (scanned for PDFs), or .jsonl files
where each line is a classification input:
  {"supplier": {"name": "..."}, "raw_description": "...", "total_value": 0}`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassifyBatch,
	}

	cmd.Flags().String("output", "", "write results as JSON lines to this file (default stdout)")
	cmd.Flags().Bool("no-ai", false, "skip the AI strategy")
	cmd.Flags().Bool("prefer-ai", false, "try the AI strategy before the offline strategies")
	return cmd
}

func runClassifyBatch(cmd *cobra.Command, args []string) error {
	items, err := collectBatchItems(args)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no invoices found in %s", strings.Join(args, ", "))
	}

	orch, store, err := buildOrchestrator(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	resolver := catalog.New(store, nil)
	encoder := json.NewEncoder(out)
	bar := progressbar.Default(int64(len(items)), "classifying")

	ctx := cmd.Context()
	var failures int
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		record := batchRecord{File: item.source}
		input := item.input

		if item.isPDF {
			text, extractErr := pdftext.ExtractText(item.source)
			if extractErr != nil {
				record.Error = extractErr.Error()
				failures++
				if err := encoder.Encode(record); err != nil {
					return fmt.Errorf("failed to write result: %w", err)
				}
				_ = bar.Add(1)
				continue
			}
			input = pdftext.ParseInvoice(text)
		}

		result := orch.Classify(ctx, input)
		record.Supplier = input.Supplier.Name
		record.TotalValue = input.TotalValue
		record.Result = &result

		if expenseType, resolveErr := resolver.ResolveOrCreate(ctx, result); resolveErr == nil {
			record.ExpenseTypeID = expenseType.ID
			record.ExpenseType = expenseType.Name
		} else {
			record.Error = resolveErr.Error()
			failures++
		}

		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		_ = bar.Add(1)
	}

	if failures > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningStyle.Render(
			fmt.Sprintf("%d of %d invoices failed", failures, len(items))))
	}
	return nil
}

type batchRecord struct {
	Result        *model.ClassificationResult `json:"result,omitempty"`
	File          string                      `json:"file"`
	Supplier      string                      `json:"supplier,omitempty"`
	ExpenseType   string                      `json:"expense_type,omitempty"`
	Error         string                      `json:"error,omitempty"`
	TotalValue    float64                     `json:"total_value,omitempty"`
	ExpenseTypeID int64                       `json:"expense_type_id,omitempty"`
}

type batchItem struct {
	source string
	input  model.ClassificationInput
	isPDF  bool
}

func collectBatchItems(args []string) ([]batchItem, error) {
	var items []batchItem
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		switch {
		case info.IsDir():
			entries, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("cannot read directory %s: %w", arg, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
					items = append(items, batchItem{source: filepath.Join(arg, entry.Name()), isPDF: true})
				}
			}

		case strings.EqualFold(filepath.Ext(arg), ".jsonl"):
			fromFile, err := readJSONLInputs(arg)
			if err != nil {
				return nil, err
			}
			items = append(items, fromFile...)

		default:
			items = append(items, batchItem{source: arg, isPDF: true})
		}
	}
	return items, nil
}

func readJSONLInputs(path string) ([]batchItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var items []batchItem
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var input model.ClassificationInput
		if err := json.Unmarshal([]byte(raw), &input); err != nil {
			return nil, fmt.Errorf("%s:%d: invalid input: %w", path, line, err)
		}
		items = append(items, batchItem{source: fmt.Sprintf("%s:%d", path, line), input: input})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return items, nil
}

func buildOrchestrator(cmd *cobra.Command) (*classify.Orchestrator, service.TypeStore, error) {
	// Flags win over config-file settings.
	noAI, _ := cmd.Flags().GetBool("no-ai")
	if !cmd.Flags().Changed("no-ai") {
		noAI = viper.GetBool("classify.disable_ai")
	}
	preferAI, _ := cmd.Flags().GetBool("prefer-ai")
	if !cmd.Flags().Changed("prefer-ai") {
		preferAI = viper.GetBool("classify.prefer_ai")
	}

	store, err := createStorage(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	var ai *classify.AIClassifier
	if !noAI {
		client, err := createLLMClient()
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		ai = classify.NewAIClassifier(client)
	}

	orch := classify.NewOrchestrator(ai, classify.Config{DisableAI: noAI, PreferAI: preferAI}, nil)
	return orch, store, nil
}

func printResultJSON(cmd *cobra.Command, input model.ClassificationInput, result model.ClassificationResult, expenseType *model.ExpenseType) error {
	payload := struct {
		Supplier    string                     `json:"supplier,omitempty"`
		ExpenseType string                     `json:"expense_type"`
		Result      model.ClassificationResult `json:"result"`
		TotalValue  float64                    `json:"total_value,omitempty"`
		TypeID      int64                      `json:"expense_type_id"`
	}{
		Supplier:    input.Supplier.Name,
		ExpenseType: expenseType.Name,
		Result:      result,
		TotalValue:  input.TotalValue,
		TypeID:      expenseType.ID,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
