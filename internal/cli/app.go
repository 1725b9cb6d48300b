// Package cli drives the console session: login, role-scoped menus and the
// prompts that feed the domain services. All failures print one line and
// the session continues.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"hospital-manager/internal/auth"
	"hospital-manager/internal/cache"
	"hospital-manager/internal/config"
	"hospital-manager/internal/gemini"
	"hospital-manager/internal/model"
	"hospital-manager/internal/repo"
	"hospital-manager/internal/service"
)

// adminRole marks the built-in operator account from the config; it is not
// a stored user.
const adminRole model.Role = "Admin"

const sessionTTL = 8 * time.Hour

type App struct {
	cfg          *config.Config
	cache        *cache.Cache
	repos        *repo.Set
	patients     *service.PatientService
	doctors      *service.DoctorService
	users        *service.UserService
	appointments *service.AppointmentService
	assistant    *gemini.Client
	prompt       *prompter
}

func New(
	cfg *config.Config,
	c *cache.Cache,
	repos *repo.Set,
	patients *service.PatientService,
	doctors *service.DoctorService,
	users *service.UserService,
	appointments *service.AppointmentService,
	assistant *gemini.Client,
) *App {
	return &App{
		cfg:          cfg,
		cache:        c,
		repos:        repos,
		patients:     patients,
		doctors:      doctors,
		users:        users,
		appointments: appointments,
		assistant:    assistant,
		prompt:       &prompter{in: bufio.NewReader(os.Stdin)},
	}
}

// Run loads the cache, tries to resume a saved session and otherwise enters
// the login loop. It returns when the operator chooses to exit.
func (a *App) Run(ctx context.Context) error {
	fmt.Println("Loading data from database...")
	if err := a.repos.LoadAll(ctx); err != nil {
		log.Printf("load: %v", err)
	}

	if claims, ok := auth.LoadSession(a.cfg.Session.File, a.cfg.Session.Secret); ok {
		fmt.Printf("Resuming session for %s\n", claims.Username)
		a.route(ctx, claims.Username, claims.Role)
	}

	for {
		fmt.Println("\n==== HOSPITAL SYSTEM ====")
		fmt.Println("1) Log in")
		fmt.Println("0) Exit")

		switch a.prompt.line("> ") {
		case "1":
			a.login(ctx)
		case "0":
			return nil
		}
	}
}

func (a *App) login(ctx context.Context) {
	username := a.prompt.required("Username: ")
	password := a.prompt.required("Password: ")

	if a.cfg.Admin.Password != "" &&
		username == a.cfg.Admin.Username && password == a.cfg.Admin.Password {
		fmt.Println("Welcome, admin.")
		a.route(ctx, username, adminRole)
		return
	}

	u, err := a.users.Authenticate(username, password)
	if err != nil {
		fmt.Println(err)
		return
	}

	if tok, err := auth.MakeToken(u, a.cfg.Session.Secret, sessionTTL); err == nil {
		if err := auth.SaveSession(a.cfg.Session.File, tok); err != nil {
			log.Printf("session: %v", err)
		}
	}

	fmt.Printf("Welcome %s. Role: %s\n", u.Name, u.Role)
	a.route(ctx, u.Username, u.Role)
}

// route dispatches to the menu for the role and cleans up on logout.
func (a *App) route(ctx context.Context, username string, role model.Role) {
	switch role {
	case adminRole:
		a.adminMenu(ctx)
	case model.RolePatient, model.RoleDoctor:
		u, err := a.users.FindByLogin(username)
		if err != nil {
			fmt.Println("account no longer exists")
			break
		}
		if role == model.RolePatient {
			a.patientMenu(ctx, u)
		} else {
			a.doctorMenu(ctx, u)
		}
	default:
		fmt.Println("unknown role, access denied")
	}

	auth.ClearSession(a.cfg.Session.File)
	a.cache.Clear()
}

// reload refreshes every kind before a menu render.
func (a *App) reload(ctx context.Context) {
	if err := a.repos.LoadAll(ctx); err != nil {
		log.Printf("reload: %v", err)
	}
}
