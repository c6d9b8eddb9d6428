package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SumanthSV/AI-Todo-summarizer/client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const (
	authLogin     = "login"
	authRegister  = "register"
	authAnonymous = "anonymous"
)

// Run signs the user in (reusing a stored token when it is still valid)
// and then runs the dashboard until the user quits.
func Run(ctx context.Context, api *client.Client, store *client.TokenStore, opts Options) error {
	if err := ensureSession(ctx, api, store); err != nil {
		return err
	}

	p := tea.NewProgram(New(ctx, api, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func ensureSession(ctx context.Context, api *client.Client, store *client.TokenStore) error {
	token, err := store.Load()
	if err != nil {
		return err
	}
	if token != "" {
		api.SetToken(token)
		_, err := api.Me(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, client.ErrUnauthenticated) {
			return err
		}
		api.SetToken("")
		_ = store.Clear()
	}

	for {
		err := signIn(ctx, api)
		if errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if err != nil {
			fmt.Println("Sign in failed:", err)
			continue
		}
		return store.Save(api.Token())
	}
}

func signIn(ctx context.Context, api *client.Client) error {
	var mode, email, password string

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to AI Todo Summarizer").
				Options(
					huh.NewOption("Sign in", authLogin),
					huh.NewOption("Create an account", authRegister),
					huh.NewOption("Continue anonymously", authAnonymous),
				).
				Value(&mode),
		),
	).RunWithContext(ctx); err != nil {
		return err
	}

	if mode == authAnonymous {
		_, err := api.Anonymous(ctx)
		return err
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter a valid email")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	).RunWithContext(ctx); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if mode == authRegister {
		_, err := api.Register(ctx, email, password)
		return err
	}
	_, err := api.Login(ctx, email, password)
	return err
}
