package cli

import (
	"errors"
	"fmt"
	"io"

	"bookstore/internal/note"
)

type actionFunc func(out io.Writer, store *note.FileStore, args []string) error

var actions = map[string]actionFunc{
	"add":    addNote,
	"read":   readNote,
	"delete": deleteNote,
}

func addNote(out io.Writer, store *note.FileStore, args []string) error {
	title, content := argAt(args, 0), argAt(args, 1)

	err := store.Add(title, content)
	if errors.Is(err, note.ErrEmpty) {
		fmt.Fprintln(out, "Title and content cannot be empty")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Note %s added!\n", title)
	return nil
}

func readNote(out io.Writer, store *note.FileStore, args []string) error {
	n, err := store.Read(argAt(args, 0))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Reading Note: %s\n\n%s\n", n.Title, n.Content)
	return nil
}

func deleteNote(out io.Writer, store *note.FileStore, args []string) error {
	title := argAt(args, 0)
	if err := store.Delete(title); err != nil {
		return err
	}

	fmt.Fprintf(out, "Note %s deleted!\n", title)
	return nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
