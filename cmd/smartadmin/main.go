// Command smartadmin is the operator dashboard for the SmartAviation site.
//
//	smartadmin login -email admin@example.com     (password from SMARTADMIN_PASSWORD or prompted)
//	smartadmin status
//	smartadmin hero -title "..." -subtitle "..."
//	smartadmin banner -title "..." -description "..."
//	smartadmin product add -name X -description Y -main a.jpg -gallery b.jpg,c.jpg,d.jpg
//	smartadmin product rm <id>
//	smartadmin request status <id> "Em andamento"
//	smartadmin user add -name N -email E -role R  (password prompted)
//	smartadmin user rm <id>
//	smartadmin logout
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/term"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/view"
	"github.com/smartaviation/site/pkg/client"
)

type settings struct {
	URL      string `env:"SMARTADMIN_URL, default=http://localhost:3000/api"`
	Session  string `env:"SMARTADMIN_SESSION"`
	Password string `env:"SMARTADMIN_PASSWORD"`
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, view.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "erro:", view.FeedbackText(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	var s settings
	if err := envconfig.Process(ctx, &s); err != nil {
		return err
	}

	global := flag.NewFlagSet("smartadmin", flag.ContinueOnError)
	global.SetOutput(out)
	url := global.String("url", s.URL, "API base URL")
	sessionPath := global.String("session", s.Session, "session file")
	yes := global.Bool("yes", false, "skip confirmation prompts")
	global.Usage = func() { usage(out, global) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return flag.ErrHelp
	}

	if *sessionPath == "" {
		p, err := defaultSessionPath()
		if err != nil {
			return err
		}
		*sessionPath = p
	}

	reader := bufio.NewReader(in)
	api := client.New(*url, client.WithStorage(client.NewFileStorage(*sessionPath)))
	admin := view.NewAdmin(api, &promptConfirmer{in: reader, out: out, assumeYes: *yes})

	cmd := &command{
		admin:      admin,
		out:        out,
		password:   s.Password,
		readSecret: secretReader(in, reader, out),
	}
	return cmd.dispatch(ctx, global.Args())
}

func defaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "smartadmin", "session.json"), nil
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "uso: smartadmin [flags] <login|logout|status|hero|banner|product|request|user> ...")
	fs.PrintDefaults()
}

type command struct {
	admin      *view.Admin
	out        io.Writer
	password   string
	readSecret func(prompt string) (string, error)
}

func (c *command) dispatch(ctx context.Context, args []string) error {
	name, rest := args[0], args[1:]
	switch name {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		err := c.admin.Logout(ctx)
		c.render()
		return err
	case "status":
		return c.status(ctx)
	case "hero":
		return c.hero(ctx, rest)
	case "banner":
		return c.banner(ctx, rest)
	case "product":
		return c.product(ctx, rest)
	case "request":
		return c.request(ctx, rest)
	case "user":
		return c.user(ctx, rest)
	}
	return fmt.Errorf("comando desconhecido %q", name)
}

func (c *command) render() {
	_ = view.RenderAdmin(c.out, c.admin.State())
}

// mutate loads the dashboard, applies fn and prints the outcome.
func (c *command) mutate(ctx context.Context, fn func() error) error {
	if err := c.admin.Load(ctx); err != nil {
		c.render()
		return err
	}
	err := fn()
	if errors.Is(err, view.ErrCancelled) {
		fmt.Fprintln(c.out, view.CancelledText)
		return err
	}
	c.render()
	return err
}

func (c *command) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "e-mail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	password := c.password
	if password == "" {
		var err error
		if password, err = c.readSecret("Senha: "); err != nil {
			return err
		}
	}
	err := c.admin.Login(ctx, *email, password)
	c.render()
	return err
}

func (c *command) status(ctx context.Context) error {
	err := c.admin.Load(ctx)
	c.render()
	return err
}

func (c *command) hero(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hero", flag.ContinueOnError)
	title := fs.String("title", "", "título")
	subtitle := fs.String("subtitle", "", "subtítulo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.mutate(ctx, func() error {
		return c.admin.SaveHero(ctx, domain.Hero{Title: *title, Subtitle: *subtitle})
	})
}

func (c *command) banner(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("banner", flag.ContinueOnError)
	title := fs.String("title", "", "chamada")
	description := fs.String("description", "", "descrição")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.mutate(ctx, func() error {
		return c.admin.SaveBanner(ctx, domain.Banner{Title: *title, Description: *description})
	})
}

func (c *command) product(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: product <add|rm>")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("product add", flag.ContinueOnError)
		name := fs.String("name", "", "nome")
		tag := fs.String("tag", "", "tag")
		description := fs.String("description", "", "descrição")
		mainImage := fs.String("main", "", "imagem principal")
		gallery := fs.String("gallery", "", "três imagens de galeria separadas por vírgula")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		form, err := productForm(*name, *tag, *description, *mainImage, *gallery)
		if err != nil {
			return err
		}
		return c.mutate(ctx, func() error { return c.admin.AddProduct(ctx, form) })
	case "rm":
		if len(args) != 2 {
			return errors.New("uso: product rm <id>")
		}
		return c.mutate(ctx, func() error { return c.admin.RemoveProduct(ctx, args[1]) })
	}
	return fmt.Errorf("subcomando desconhecido %q", args[0])
}

func (c *command) request(ctx context.Context, args []string) error {
	if len(args) != 3 || args[0] != "status" {
		return errors.New(`uso: request status <id> <"Novo"|"Em andamento"|"Concluído">`)
	}
	return c.mutate(ctx, func() error {
		return c.admin.SetRequestStatus(ctx, args[1], domain.RequestStatus(args[2]))
	})
}

func (c *command) user(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: user <add|rm>")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("user add", flag.ContinueOnError)
		var u client.NewUser
		fs.StringVar(&u.Name, "name", "", "nome")
		fs.StringVar(&u.Email, "email", "", "e-mail")
		fs.StringVar(&u.Role, "role", "", "função")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		var err error
		if u.Password, err = c.readSecret("Senha do novo usuário: "); err != nil {
			return err
		}
		return c.mutate(ctx, func() error { return c.admin.AddUser(ctx, u) })
	case "rm":
		if len(args) != 2 {
			return errors.New("uso: user rm <id>")
		}
		return c.mutate(ctx, func() error { return c.admin.RemoveUser(ctx, args[1]) })
	}
	return fmt.Errorf("subcomando desconhecido %q", args[0])
}

// productForm reads the image files. Missing paths leave the file empty so the
// dashboard can report the incomplete form itself.
func productForm(name, tag, description, mainImage, gallery string) (client.ProductForm, error) {
	form := client.ProductForm{Name: name, Tag: tag, Description: description}

	var err error
	if form.MainImage, err = readFile(mainImage); err != nil {
		return form, err
	}
	var paths []string
	if gallery != "" {
		paths = strings.Split(gallery, ",")
	}
	for i := range form.Gallery {
		if i >= len(paths) {
			break
		}
		if form.Gallery[i], err = readFile(strings.TrimSpace(paths[i])); err != nil {
			return form, err
		}
	}
	return form, nil
}

func readFile(path string) (client.File, error) {
	if path == "" {
		return client.File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return client.File{}, fmt.Errorf("ler imagem: %w", err)
	}
	return client.File{Name: filepath.Base(path), Data: data}, nil
}

// promptConfirmer asks a y/N question on the terminal.
// secretReader reads a password without echo from a terminal, or a plain
// line from any other input.
func secretReader(in io.Reader, buffered *bufio.Reader, out io.Writer) func(string) (string, error) {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("read password: %w", err)
			}
			return string(b), nil
		}
		line, err := buffered.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

type promptConfirmer struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	if p.assumeYes {
		return true
	}
	fmt.Fprintf(p.out, "%s [s/N] ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
