// Command libraryctl administers the library database: schema reset, account
// creation and the overdue report.
package main

import (
	"fmt"
	"io"
	"os"

	"bookshelf/internal/config"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// cli carries what every subcommand needs. Tests fill cfg and db directly.
type cli struct {
	cfg *config.Config
	db  *gorm.DB
	in  io.Reader
	out io.Writer
}

func main() {
	c := &cli{in: os.Stdin, out: os.Stdout}
	defer c.close()

	if err := newRootCmd(c).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		c.close()
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "libraryctl",
		Short:         "Administer the bookshelf library database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.connect()
		},
	}

	root.AddCommand(
		newInitDBCmd(c),
		newCreateUserCmd(c),
		newOverdueCmd(c),
	)
	return root
}

// connect loads configuration and opens the database unless already set
func (c *cli) connect() error {
	if c.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		c.cfg = cfg
	}
	if c.db == nil {
		db, err := config.ConnectDatabase(c.cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		c.db = db
	}
	return nil
}

func (c *cli) close() {
	if c.db != nil {
		_ = config.CloseDatabase(c.db)
		c.db = nil
	}
}
