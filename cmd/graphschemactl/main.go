package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Build information, set with -ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// options are the persistent flags shared by every command
type options struct {
	server  string
	graph   string
	output  string
	timeout time.Duration
	config  string
}

func printVersionInfo(w io.Writer) {
	fmt.Fprintf(w, "graphschemactl %s\n", Version)
	fmt.Fprintf(w, "Built: %s, from commit: %s\n", BuildTime, GitCommit)
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// newRootCmd builds the command tree writing to out
func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "graphschemactl",
		Short: "Graph schema management client",
		Long: "Ensure property keys, vertex and edge labels and indices on the graphs served by a graphschema " +
			"server, and drive composite indices through to ENABLED.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				printVersionInfo(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}
	root.SetOut(out)

	server := "localhost:50061"
	if addr := os.Getenv("GRAPHSCHEMA_SERVER"); addr != "" {
		server = addr
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.server, "server", server, "Address of the graphschema server (env GRAPHSCHEMA_SERVER)")
	pf.StringVarP(&opts.graph, "context", "c", "", "Graph context to operate on")
	pf.StringVarP(&opts.output, "output", "o", "table", "Output format: table or yaml")
	pf.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Deadline of each request")
	pf.StringVar(&opts.config, "config", "", "Server configuration file, read for keyring settings")
	root.Flags().Bool("version", false, "Show version information and exit")

	root.AddCommand(
		newKeysCmd(opts),
		newVertexLabelsCmd(opts),
		newEdgeLabelsCmd(opts),
		newIndicesCmd(opts),
		newCredentialsCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
