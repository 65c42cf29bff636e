package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tasklist/internal/client/api"
	"github.com/dmitrijs2005/tasklist/internal/client/config"
	"github.com/dmitrijs2005/tasklist/internal/client/models"
)

type taskAPI interface {
	Signup(ctx context.Context, userName, email, password string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (string, error)
	SetToken(token string)
	CreateTask(ctx context.Context, title string) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type App struct {
	config *config.Config
	api    taskAPI
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerAddress, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.email)
}

// Run starts the REPL and blocks until the user leaves.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to tasklist CLI, server %s (type 'help' for commands)\n", a.config.ServerAddress)
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
