package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasklist/internal/client/api"
	"github.com/dmitrijs2005/tasklist/internal/common"
)

func (a *App) report(err error) error {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, common.ErrInvalidToken):
		fmt.Fprintln(a.out, "Session expired, please login again")
		a.forget()
	default:
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(a.out, "Error:", apiErr.Message)
		} else {
			fmt.Fprintln(a.out, "Error:", err)
		}
	}
	return err
}

func (a *App) forget() {
	a.email = ""
	a.api.SetToken("")
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return common.ErrorUnauthenticated
	}
	return nil
}

// argOrPrompt returns the joined args, or asks for the value when none
// were given.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.Signup(ctx, userName, email, password); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "User created, you can login now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.Signin(ctx, email, password); err != nil {
		return a.report(err)
	}
	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.forget()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	title, err := a.argOrPrompt(args, "Enter task title")
	if err != nil {
		return err
	}

	task, err := a.api.CreateTask(ctx, title)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Added", task.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "[%s] %s  %s\n", mark, t.ID, t.Title)
	}
	return nil
}

func (a *App) SetDone(ctx context.Context, args []string, done bool) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.argOrPrompt(args, "Enter task id")
	if err != nil {
		return err
	}

	if _, err := a.api.SetCompleted(ctx, id, done); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Updated", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.argOrPrompt(args, "Enter task id to delete")
	if err != nil {
		return err
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Deleted", id)
	return nil
}
