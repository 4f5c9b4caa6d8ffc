package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/config"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/core/services"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitDBCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Drop all tables and create an empty schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := models.Reset(c.db); err != nil {
				return fmt.Errorf("reset schema: %w", err)
			}
			fmt.Fprintln(c.out, "Initialized the database.")
			return nil
		},
	}
}

func newCreateUserCmd(c *cli) *cobra.Command {
	var username, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account, prompting for its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(c.in)

			pw, err := c.readPassword(reader, "Password: ")
			if err != nil {
				return err
			}
			confirm, err := c.readPassword(reader, "Repeat password: ")
			if err != nil {
				return err
			}
			if pw != confirm {
				return errors.New("passwords do not match")
			}

			users := services.NewUserService(repositories.NewUserRepository(c.db))
			user, err := users.Create(cmd.Context(), &services.CreateUserInput{
				Username: username,
				Password: pw,
				Role:     domain.Role(role),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "Created %s %q (id %d).\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "login name (3 to 50 characters)")
	cmd.Flags().StringVarP(&role, "role", "r", string(domain.RoleMember), "member or admin")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newOverdueCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List outstanding loans past their due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reportDB, err := config.SQLX(c.db, c.cfg.Database.Driver)
			if err != nil {
				return err
			}

			reports := services.NewReportService(repositories.NewReportRepository(reportDB))
			loans, err := reports.Overdue(cmd.Context(), domain.Operator(), c.cfg.Now())
			if err != nil {
				return err
			}

			if len(loans) == 0 {
				fmt.Fprintln(c.out, "No overdue loans.")
				return nil
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LOAN\tUSER\tTITLE\tDUE")
			for _, l := range loans {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", l.LoanID, l.Username, l.Title, l.ReturnDeadline.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

// readPassword masks input on a terminal and reads a plain line otherwise
func (c *cli) readPassword(reader *bufio.Reader, prompt string) (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.out, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
