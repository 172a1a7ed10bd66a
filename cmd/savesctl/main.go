// savesctl exercises the save subsystem against a live document store:
// sign in as a record user, list the saved library, or toggle a save.
//
//	savesctl -user marget -pass secret list recipes
//	savesctl -user marget -pass secret toggle jobs job1 -name "Tea Taster" -company NewTeaTrade -location Mombasa
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/newteatrade/saves/pkg/auth"
	"github.com/newteatrade/saves/pkg/catalog"
	"github.com/newteatrade/saves/pkg/logger"
	"github.com/newteatrade/saves/pkg/models"
	"github.com/newteatrade/saves/pkg/saves"
	"github.com/newteatrade/saves/pkg/site"
	"github.com/newteatrade/saves/pkg/store/surreal"
	"github.com/newteatrade/saves/pkg/view"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "savesctl:", err)
		os.Exit(1)
	}
}

// logNav stands in for the browser's navigation: the CLI signs in up front,
// so a redirect only happens when credentials were missing.
type logNav struct {
	log zerolog.Logger
}

func (n logNav) Redirect(path string) {
	n.log.Warn().Str("path", path).Msg("not signed in, would redirect")
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("savesctl", flag.ContinueOnError)
	var (
		configPath = fs.String("config", os.Getenv("SAVES_CONFIG"), "site config YAML")
		username   = fs.String("user", os.Getenv("SAVES_USER"), "record user name")
		password   = fs.String("pass", os.Getenv("SAVES_PASS"), "record user password")
		signup     = fs.Bool("signup", false, "create the record user instead of signing in")
		pretty     = fs.Bool("pretty", true, "console log output")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: savesctl [flags] <list|toggle> ...")
	}

	cfg, err := site.Load(*configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Name, cfg.LogLevel, *pretty)

	db, err := surreal.Connect(ctx, surreal.Config{
		URL:       cfg.Store.URL,
		Namespace: cfg.Store.Namespace,
		Database:  cfg.Store.Database,
	})
	if err != nil {
		return err
	}
	st := surreal.New(db)
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	provider := auth.NewProvider(db, auth.Config{
		Namespace: cfg.Store.Namespace,
		Database:  cfg.Store.Database,
		Access:    cfg.Auth.Access,
	}, log)

	var user *auth.User
	if *signup {
		user, err = provider.SignUp(ctx, *username, *password)
	} else {
		user, err = provider.SignIn(ctx, *username, *password)
	}
	if err != nil {
		return err
	}

	switch cmd := fs.Arg(0); cmd {
	case "list":
		return list(ctx, st, cfg, user, log, fs.Args()[1:])
	case "toggle":
		return toggle(ctx, st, cfg, user, log, fs.Args()[1:])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func list(ctx context.Context, st *surreal.Store, cfg *site.Config, user *auth.User, log zerolog.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: savesctl list <kind>")
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}

	page := view.NewPage(true, kind.String())
	ctrl := saves.NewController(st, nil, page, logNav{log}, cfg, log)
	ctrl.LoadSaved(ctx, user, kind)

	lst := page.List(kind.String())
	if msg := lst.ErrorMessage(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if msg := lst.EmptyMessage(); msg != "" {
		fmt.Println(msg)
		return nil
	}
	for _, card := range lst.Cards() {
		ctl := card.Control()
		natural, err := models.EncodedKey(ctl.Attr(view.AttrItemID)).Decode()
		if err != nil {
			natural = ctl.Attr(view.AttrItemID)
		}
		fmt.Printf("%s\t%s\n", natural, ctl.Attr(view.AttrName))
	}
	return nil
}

func toggle(ctx context.Context, st *surreal.Store, cfg *site.Config, user *auth.User, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("toggle", flag.ContinueOnError)
	var (
		name        = fs.String("name", "", "display name (recipes, jobs)")
		description = fs.String("description", "", "description (recipes)")
		image       = fs.String("image", "", "image path (recipes)")
		href        = fs.String("href", "", "detail link (recipes)")
		company     = fs.String("company", "", "company (jobs)")
		location    = fs.String("location", "", "location (jobs)")
	)
	if len(args) < 2 {
		return fmt.Errorf("usage: savesctl toggle <kind> <natural-key> [flags]")
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}
	naturalKey := args[1]
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	key, err := models.EncodeKey(naturalKey)
	if err != nil {
		return err
	}

	// Products resolve their display fields through the catalog, exactly as
	// the listing page does.
	var cat *catalog.Catalog
	if kind == models.KindProducts {
		if cfg.CatalogURL == "" {
			return fmt.Errorf("site %q has no product catalog", cfg.Name)
		}
		cat, err = catalog.NewLoader(nil, cfg.CatalogURL, log).Load(ctx)
		if err != nil {
			return err
		}
	}

	page := view.NewPage(false, kind.String())
	ctrl := saves.NewController(st, cat, page, logNav{log}, cfg, log)

	ctl := view.NewControl(map[string]string{
		view.AttrItemType:    kind.String(),
		view.AttrItemID:      key.String(),
		view.AttrName:        *name,
		view.AttrDescription: *description,
		view.AttrImage:       *image,
		view.AttrHref:        *href,
		view.AttrCompany:     *company,
		view.AttrLocation:    *location,
	})
	page.List(kind.String()).Append(view.NewCard(ctl))

	if err := ctrl.HandleToggle(ctx, &view.Event{}, ctl, user); err != nil {
		return err
	}
	if ctl.Saved() {
		fmt.Printf("saved %s %s\n", kind, naturalKey)
	} else {
		fmt.Printf("removed %s %s\n", kind, naturalKey)
	}
	return nil
}
