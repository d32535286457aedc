package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/huynhanx03/codelens/pkg/analysis"
	"github.com/huynhanx03/codelens/pkg/settings"
	"github.com/huynhanx03/codelens/pkg/unique"
)

func newAnalyzeCmd(cfgFile *string) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Score local files and print the results as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings.Load(*cfgFile)
			if err != nil {
				return err
			}

			var forced analysis.Language
			if lang != "" {
				l, ok := analysis.ParseLanguage(lang)
				if !ok {
					return errors.Errorf("unsupported language %q", lang)
				}
				forced = l
			}

			node, err := unique.NewSnowflakeNode(cfg.SnowflakeNode, nil)
			if err != nil {
				return err
			}
			analyzer := analysis.NewAnalyzer(unique.NewPrefixedIDs(node, idPrefix), nil)

			results := make([]analysis.Result, 0, len(args))
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, "read %s", path)
				}
				results = append(results, analyzer.Analyze(analysis.CodeFile{
					Name:     path,
					Content:  string(content),
					Language: forced,
				}))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	cmd.Flags().StringVarP(&lang, "language", "l", "", "force a language instead of detecting it from the extension")
	return cmd
}
