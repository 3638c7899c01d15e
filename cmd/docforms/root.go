package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docuforge/docforms/pkg/descriptor"
)

type sourceFlags struct {
	source      string
	operationID string
	docType     string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "descriptor document (json/yaml) or OpenAPI spec path")
	cmd.Flags().StringVar(&f.operationID, "operation", "", "OpenAPI operation id (treats --source as an OpenAPI document)")
	cmd.Flags().StringVar(&f.docType, "type", "", "document type name override")
	_ = cmd.MarkFlagRequired("source")
}

// load resolves the descriptor list: OpenAPI when --operation is given,
// otherwise a JSON/YAML descriptor document.
func (f *sourceFlags) load(ctx context.Context) (string, descriptor.List, error) {
	if f.operationID != "" {
		raw, err := os.ReadFile(f.source)
		if err != nil {
			return "", nil, fmt.Errorf("read %s: %w", f.source, err)
		}
		list, err := descriptor.FromOpenAPI(ctx, raw, f.operationID)
		if err != nil {
			return "", nil, err
		}
		return f.documentType(f.operationID), list, nil
	}

	docType, list, err := descriptor.LoadFile(f.source)
	if err != nil {
		return "", nil, err
	}
	return f.documentType(docType), list, nil
}

func (f *sourceFlags) documentType(fallback string) string {
	if f.docType != "" {
		return f.docType
	}
	if fallback != "" {
		return fallback
	}
	return "Document"
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docforms",
		Short: "Generate, fill and preview business-document forms from field descriptors",
		Long: `docforms turns a document type's field descriptors into validated forms:
render them as HTML, fill them interactively in the terminal, or serve them
over HTTP with a live preview.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFillCmd())
	root.AddCommand(newServeCmd())
	return root
}
