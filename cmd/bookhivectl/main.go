// bookhivectl is the operator companion to the BookHive web server: it
// creates the schema, seeds the default accounts, and performs one-off
// admin tasks without going through the web UI.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thanushri8950/BookHivewebapp/internal/data"
)

var (
	dbDriver string
	dbDSN    string
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "bookhivectl",
		Short:         "Operator tools for the BookHive library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&dbDriver, "db-driver",
		envOr("BOOKHIVE_DB_DRIVER", "sqlite3"), "database driver (postgres|sqlite3)")
	root.PersistentFlags().StringVar(&dbDSN, "db-dsn",
		envOr("BOOKHIVE_DB_DSN", "bookhive.db"), "database DSN")

	root.AddCommand(setupCmd(), addBookCmd(), resetPasswordCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the database tables and seed the default accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := data.Migrate(db, dbDriver); err != nil {
				return err
			}
			if err := data.Seed(db); err != nil {
				return err
			}

			fmt.Println("Database setup complete.")
			return nil
		},
	}
}

func addBookCmd() *cobra.Command {
	var (
		id       int64
		title    string
		author   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add-book",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id < 1 {
				return fmt.Errorf("--id must be a positive integer")
			}
			if title == "" || author == "" || category == "" {
				return fmt.Errorf("--title, --author and --category must all be provided")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			models := data.NewModels(db)
			book := &data.Book{ID: id, Title: title, Author: author, Category: category}
			if err := models.Books.Insert(book); err != nil {
				return err
			}

			fmt.Printf("Added book %d: %s by %s\n", book.ID, book.Title, book.Author)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "book id")
	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "book author")
	cmd.Flags().StringVar(&category, "category", "", "book category")
	return cmd
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Set a new password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword("New password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 bytes long")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			models := data.NewModels(db)
			if err := models.Users.UpdatePassword(args[0], password); err != nil {
				return err
			}

			fmt.Printf("Password updated for %s.\n", args[0])
			return nil
		},
	}
}

// readPassword reads a password from the terminal with echo disabled.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytePassword)), nil
}

func openDB() (*sql.DB, error) {
	db, err := sql.Open(dbDriver, dbDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
