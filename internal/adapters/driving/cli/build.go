package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
)

var (
	flagOutput string
	flagStdout bool
)

var buildCmd = &cobra.Command{
	Use:   "build [repo-url]",
	Short: "Flatten a repository into a single text document",
	Long: `Fetches the repository tree and the contents of allow-listed text
files, assembles them into one document and writes it to
<repo>-formatted-prompt.txt in the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"Output file path (default <repo>-formatted-prompt.txt)")
	buildCmd.Flags().BoolVar(&flagStdout, "stdout", false,
		"Print the document instead of writing a file")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if documentBuilder == nil {
		return errors.New("document builder not configured")
	}

	doc, err := documentBuilder.Build(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if flagStdout {
		cmd.Print(doc)
		return nil
	}

	out := flagOutput
	if out == "" {
		repo, err := domain.ParseRepoURL(args[0])
		if err != nil {
			return err
		}
		out = repo.Name + "-formatted-prompt.txt"
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	cmd.Printf("Repository information has been saved to %s\n", out)
	return nil
}
