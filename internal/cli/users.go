package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/amnotwallas/estudiantes-frontend/internal/controller"
	"github.com/amnotwallas/estudiantes-frontend/pkg/export"
)

func (a *App) runUsers(ctx context.Context, args []string) error {
	if err := a.authorize("dashboard"); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("users: missing verb")
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "list":
		return a.usersList(ctx, rest)
	case "create":
		return a.usersCreate(ctx, rest)
	case "update":
		return a.usersUpdate(ctx, rest)
	case "delete":
		return a.usersDelete(ctx, rest)
	case "export":
		return a.usersExport(ctx, rest)
	default:
		return fmt.Errorf("users: unknown verb %q", verb)
	}
}

func (a *App) usersList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.users.Load(ctx); err != nil {
		return err
	}
	a.users.SetFilter(*query)
	for _, u := range a.users.Filtered() {
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", u.ID, u.Username, u.Role)
	}
	return nil
}

func (a *App) usersCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	draft := userDraft{}
	fs.StringVar(&draft.Username, "u", "", "usuario")
	fs.StringVar(&draft.Password, "p", "", "contraseña")
	fs.StringVar(&draft.Role, "role", "user", "admin|user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.users.OpenCreateForm(); err != nil {
		return err
	}
	created, err := a.users.Create(ctx, draft)
	if err != nil {
		a.users.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "usuario creado: %s\n", created.Username)
	return nil
}

func (a *App) usersUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.String("id", "", "id del usuario")
	draft := userDraft{}
	fs.StringVar(&draft.Username, "u", "", "usuario")
	fs.StringVar(&draft.Password, "p", "", "contraseña (vacía = sin cambio)")
	fs.StringVar(&draft.Role, "role", "user", "admin|user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.users.Load(ctx); err != nil {
		return err
	}
	current, err := a.users.OpenEditForm(*id)
	if err != nil {
		return err
	}
	if draft.Username == "" {
		draft.Username = current.Username
	}
	updated, err := a.users.Update(ctx, *id, draft)
	if err != nil {
		a.users.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "usuario actualizado: %s\n", updated.Username)
	return nil
}

func (a *App) usersDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "nada que eliminar")
		return nil
	}
	results, err := a.users.BulkDelete(ctx, args)
	a.reportBulk(results)
	return err
}

func (a *App) usersExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	format := fs.String("format", "csv", "csv|pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.users.Load(ctx); err != nil {
		return err
	}
	a.users.SetFilter(*query)

	table := export.Table{Title: "Usuarios", Columns: []string{"ID", "Usuario", "Rol"}}
	for _, u := range a.users.Filtered() {
		table.Rows = append(table.Rows, []string{u.ID, u.Username, string(u.Role)})
	}
	return a.saveExport("usuarios", export.Format(*format), table)
}

func (a *App) reportBulk(results controller.BulkResult) {
	for _, id := range results.Succeeded() {
		fmt.Fprintf(a.out, "ok\t%s\n", id)
	}
	for _, id := range results.Failed() {
		fmt.Fprintf(a.out, "error\t%s\t%v\n", id, results[id])
	}
}
