package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/app"
	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui"
	"github.com/dori/workbridge/internal/ui/theme"
	"github.com/dori/workbridge/internal/ui/views"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling; anything starting with "-" is a TUI flag
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") {
		var err error
		switch os.Args[1] {
		case "login":
			err = handleLogin(os.Args[2:], os.Stdin, os.Stdout)
		case "logout":
			err = handleLogout(os.Args[2:], os.Stdout)
		case "whoami":
			err = handleWhoami(os.Args[2:], os.Stdout)
		case "projects":
			err = handleProjects(os.Args[2:], os.Stdout)
		case "project":
			err = handleProject(os.Args[2:], os.Stdout)
		case "version":
			fmt.Printf("workbridge v%s\n", version)
		case "help":
			printHelp()
		default:
			err = fmt.Errorf("unknown command %q, see: workbridge help", os.Args[1])
		}
		exitOnError(err)
		return
	}

	// Parse flags for TUI mode
	flag.Usage = printHelp
	viewFlag := flag.String("view", "", "Starting view (projects, post, browse, applications)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	apiFlag := flag.String("api", "", "Backend base URL")
	flag.Parse()

	exitOnError(runTUI(*viewFlag, *themeFlag, *apiFlag))
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `workbridge - Freelance marketplace client

Usage:
  workbridge                          Start the TUI
  workbridge login <email>            Sign in, reading the password from stdin
  workbridge logout                   Forget the stored session
  workbridge whoami                   Show the signed-in user
  workbridge projects [--skill S]     List open projects
  workbridge project <id>             Show one project
  workbridge version                  Show version
  workbridge help                     Show this help

TUI Options:
  --view <name>     Starting view (projects, post, browse, applications)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)
  --api <url>       Backend base URL (default http://localhost:8080/api)

Environment:
  WORKBRIDGE_API_URL, WORKBRIDGE_DATA_DIR, WORKBRIDGE_PAGE_SIZE,
  WORKBRIDGE_HTTP_TIMEOUT, WORKBRIDGE_LOG_LEVEL, WORKBRIDGE_DEBUG,
  WORKBRIDGE_DESKTOP_NOTIFY, WORKBRIDGE_THEME
  A .env file in the working directory is read first.

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom
                n/p           Next/previous page
                r             Refresh

  Clients:      e             Edit project
                d             Delete project (with confirm)
                a / x         Accept / reject application

  Freelancers:  /             Search
                s / S         Cycle / clear skill filter
                a             Apply to project

  General:      1-2           Switch views
                C-l           Log out
                C-t           Cycle theme
                ?             Help
                q             Quit`

	fmt.Println(help)
}

// loadConfig reads the environment and applies a --api override
func loadConfig(apiURL string) *app.Config {
	cfg := app.LoadConfig()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg
}

func runTUI(startView, themeName, apiURL string) error {
	cfg := loadConfig(apiURL)
	if themeName != "" {
		cfg.Theme = themeName
	}

	start := ui.ViewAuth
	if startView != "" {
		v, ok := ui.ParseView(startView)
		if !ok {
			return fmt.Errorf("unknown view %q", startView)
		}
		start = v
	}

	t, ok := theme.ByName(cfg.Theme)
	if !ok {
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	theme.SetTheme(t)

	// Create application
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// Create and run program
	p := tea.NewProgram(
		ui.NewRootModel(application, start),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	application.Client.SetUnauthorizedHandler(func(err error) {
		if application.Sessions.Token() != "" {
			if notifyErr := application.Notifier.SendSessionExpired(); notifyErr != nil {
				application.Log.WithError(notifyErr).Debug("desktop notification failed")
			}
		}
		if clearErr := application.Sessions.Clear(); clearErr != nil {
			application.Log.WithError(clearErr).Warn("failed to clear session")
		}
		p.Send(ui.SessionExpiredMsg{Err: err})
	})

	_, err = p.Run()
	return err
}

// openUnlocked builds the application for a one-shot command
func openUnlocked(apiURL string) (*app.App, error) {
	application, err := app.NewUnlocked(loadConfig(apiURL))
	if err != nil {
		return nil, err
	}
	application.Client.SetUnauthorizedHandler(func(error) {
		if err := application.Sessions.Clear(); err != nil {
			application.Log.WithError(err).Warn("failed to clear session")
		}
	})
	return application, nil
}

func handleLogin(args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	apiURL := fs.String("api", "", "Backend base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: workbridge login <email>  (password on stdin)")
	}

	password, err := readPassword(stdin)
	if err != nil {
		return err
	}

	application, err := openUnlocked(*apiURL)
	if err != nil {
		return err
	}
	defer application.Close()

	sess, err := application.Client.Login(context.Background(), model.Credentials{
		Email:    strings.TrimSpace(fs.Arg(0)),
		Password: password,
	})
	if err != nil {
		return errors.New(api.Message(err, "Login failed"))
	}
	if err := application.Sessions.Save(*sess); err != nil {
		return err
	}

	fmt.Fprintf(out, "Signed in to %s as %s\n", application.Client.BaseURL(), describeUser(sess.User))
	return nil
}

// readPassword returns the first line of r
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required on stdin")
	}
	return password, nil
}

func handleLogout(args []string, out io.Writer) error {
	if len(args) > 0 {
		return errors.New("usage: workbridge logout")
	}
	application, err := openUnlocked("")
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out")
	return nil
}

func handleWhoami(args []string, out io.Writer) error {
	if len(args) > 0 {
		return errors.New("usage: workbridge whoami")
	}
	application, err := openUnlocked("")
	if err != nil {
		return err
	}
	defer application.Close()

	sess, err := application.Sessions.Load()
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Fprintln(out, "Not signed in")
		return nil
	}
	fmt.Fprintln(out, describeUser(sess.User))
	return nil
}

func describeUser(u model.User) string {
	return fmt.Sprintf("%s <%s> (%s)", u.Name, u.Email, strings.ToLower(string(u.Role)))
}

func handleProjects(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("projects", flag.ContinueOnError)
	skill := fs.String("skill", "", "Only projects requiring this skill")
	page := fs.Int("page", 1, "Page number, starting at 1")
	apiURL := fs.String("api", "", "Backend base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 1 {
		return errors.New("--page must be at least 1")
	}

	application, err := openUnlocked(*apiURL)
	if err != nil {
		return err
	}
	defer application.Close()

	sess, err := application.Sessions.Load()
	if err != nil {
		return err
	}
	if sess == nil {
		return errors.New("not signed in, run: workbridge login <email>")
	}

	req := api.PageRequest{Page: *page - 1}
	var result *model.Page[model.Project]
	if *skill != "" {
		result, err = application.Client.SearchProjectsBySkill(context.Background(), *skill, req)
	} else {
		result, err = application.Client.Projects(context.Background(), req)
	}
	if err != nil {
		return errors.New(api.Message(err, "Failed to load projects"))
	}

	printProjects(out, result, *page)
	return nil
}

func handleProject(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	apiURL := fs.String("api", "", "Backend base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: workbridge project <id>")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid project id %q", fs.Arg(0))
	}

	application, err := openUnlocked(*apiURL)
	if err != nil {
		return err
	}
	defer application.Close()

	project, err := application.Client.Project(context.Background(), id)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("project %d not found", id)
		}
		return errors.New(api.Message(err, "Failed to load project"))
	}

	printProject(out, *project)
	if desc := strings.TrimSpace(project.Description); desc != "" {
		fmt.Fprintf(out, "\n%s\n", desc)
	}
	return nil
}

// printProjects writes one block per project followed by a page summary
func printProjects(out io.Writer, result *model.Page[model.Project], page int) {
	projects := result.Items()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found")
		return
	}

	for _, p := range projects {
		printProject(out, p)
	}

	fmt.Fprintf(out, "\nPage %d of %s, %s project(s)\n",
		page,
		humanize.Comma(int64(max(result.TotalPages, 1))),
		humanize.Comma(int64(result.TotalElements)))
}

func printProject(out io.Writer, p model.Project) {
	fmt.Fprintf(out, "#%d  %s  %s  [%s]\n", p.ID, p.DisplayTitle(), views.Money(p.Budget), p.Status.Label())
	if len(p.RequiredSkills) > 0 {
		fmt.Fprintf(out, "     skills: %s\n", strings.Join(p.RequiredSkills, ", "))
	}
	if p.Deadline != "" {
		fmt.Fprintf(out, "     due: %s\n", views.Due(p))
	}
	if posted := views.Posted(p.CreatedAt); posted != "" {
		fmt.Fprintf(out, "     posted %s\n", posted)
	}
}
