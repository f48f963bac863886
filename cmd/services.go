package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"
)

// serviceAdmin registers and edits the client services allowed to use the
// API. Services are never deleted, only disabled.
type serviceAdmin struct {
	services *store.ServiceStore
	out      io.Writer
}

type newService struct {
	Name        string
	Slug        string
	WebhookURL  string
	CallbackURL string
	Currencies  []string
	IPs         []string
}

func (a *serviceAdmin) create(ctx context.Context, in newService) (*models.Service, error) {
	if in.Slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if _, err := a.services.GetBySlug(ctx, in.Slug); err == nil {
		return nil, fmt.Errorf("service %q already exists", in.Slug)
	}

	currencies := make([]string, 0, len(in.Currencies))
	for _, c := range in.Currencies {
		c = strings.ToUpper(strings.TrimSpace(c))
		if !models.Currency(c).IsValid() {
			return nil, fmt.Errorf("unsupported currency %q", c)
		}
		currencies = append(currencies, c)
	}

	name := in.Name
	if name == "" {
		name = in.Slug
	}
	svc := &models.Service{
		Name:               name,
		Slug:               in.Slug,
		WebhookURL:         in.WebhookURL,
		DefaultCallbackURL: in.CallbackURL,
		AllowedCurrencies:  datatypes.JSONSlice[string](currencies),
		AllowedIPs:         datatypes.JSONSlice[string](in.IPs),
		Enabled:            true,
	}
	if err := a.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "created %s\napi key:    %s\napi secret: %s\n", svc.Slug, svc.APIKey, svc.APISecret)
	return svc, nil
}

func (a *serviceAdmin) list(ctx context.Context) error {
	services, err := a.services.GetAll(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tENABLED\tAPI KEY\tCURRENCIES\tWEBHOOK")
	for _, s := range *services {
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%s\n", s.Slug, s.Enabled, s.APIKey, strings.Join(s.AllowedCurrencies, ","), s.WebhookURL)
	}
	return w.Flush()
}

func (a *serviceAdmin) setEnabled(ctx context.Context, slug string, enabled bool) error {
	svc, err := a.services.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("service %q: %w", slug, err)
	}
	svc.Enabled = enabled
	if err := a.services.Update(ctx, svc, svc.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s enabled=%t\n", slug, enabled)
	return nil
}

// rotate issues new credentials; the old key stops working immediately.
func (a *serviceAdmin) rotate(ctx context.Context, slug string) (*models.Service, error) {
	svc, err := a.services.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("service %q: %w", slug, err)
	}
	svc.RotateCredentials()
	if err := a.services.Update(ctx, svc, svc.ID); err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "rotated %s\napi key:    %s\napi secret: %s\n", svc.Slug, svc.APIKey, svc.APISecret)
	return svc, nil
}

func openServiceAdmin(cmd *cobra.Command) (*serviceAdmin, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := cfg.DB.GormConnect()
	if err != nil {
		return nil, err
	}
	return &serviceAdmin{services: store.NewServiceStore(db), out: cmd.OutOrStdout()}, nil
}

func servicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Manage client services and their API credentials",
	}
	cmd.AddCommand(servicesCreateCmd(), servicesListCmd())
	cmd.AddCommand(servicesToggleCmd("enable", true), servicesToggleCmd("disable", false))
	cmd.AddCommand(servicesRotateCmd())
	return cmd
}

func servicesCreateCmd() *cobra.Command {
	var in newService
	cmd := &cobra.Command{
		Use:   "create [slug]",
		Short: "Register a service and print its credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := openServiceAdmin(cmd)
			if err != nil {
				return err
			}
			in.Slug = args[0]
			_, err = admin.create(cmd.Context(), in)
			return err
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name (defaults to the slug)")
	cmd.Flags().StringVar(&in.WebhookURL, "webhook-url", "", "URL receiving payment.success and payment.refunded")
	cmd.Flags().StringVar(&in.CallbackURL, "callback-url", "", "default customer redirect after checkout")
	cmd.Flags().StringSliceVar(&in.Currencies, "currencies", nil, "allowed currencies, empty allows all")
	cmd.Flags().StringSliceVar(&in.IPs, "ips", nil, "allowed client IPs, empty allows all")
	return cmd
}

func servicesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered services",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := openServiceAdmin(cmd)
			if err != nil {
				return err
			}
			return admin.list(cmd.Context())
		},
	}
}

func servicesToggleCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [slug]",
		Short: strings.ToUpper(use[:1]) + use[1:] + " a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := openServiceAdmin(cmd)
			if err != nil {
				return err
			}
			return admin.setEnabled(cmd.Context(), args[0], enabled)
		},
	}
}

func servicesRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate [slug]",
		Short: "Issue new API credentials for a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := openServiceAdmin(cmd)
			if err != nil {
				return err
			}
			_, err = admin.rotate(cmd.Context(), args[0])
			return err
		},
	}
}
