package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuanying/epub-thumbnailer/internal/desktop"
)

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the thumbnailer with GNOME file managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, dir, err := readDesktopSettings(cmd)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())

			executable, _ := cmd.Flags().GetString("exec")
			if executable == "" {
				if executable, err = os.Executable(); err != nil {
					return fmt.Errorf("failed to locate executable: %w", err)
				}
			}

			if desktop.IsRegistered(dir) {
				s.logger.Info("replacing existing thumbnailer hook", "dir", dir)
			}
			target, err := desktop.Register(dir, executable)
			if err != nil {
				hintPermission(p, err)
				return err
			}
			s.logger.Debug("thumbnailer installed", "path", target, "exec", executable)
			p.println(p.green("Thumbnailer has been registered with GNOME:"), target)
			return nil
		},
	}
	addDesktopFlags(cmd)
	cmd.Flags().String("exec", "", "Executable written into the hook (default: this binary)")
	return cmd
}

func newUnregisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unregister",
		Short: "Remove the thumbnailer from GNOME file managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, dir, err := readDesktopSettings(cmd)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())

			target, err := desktop.Unregister(dir)
			if err != nil {
				if errors.Is(err, desktop.ErrNotRegistered) {
					p.println(p.yellow(target + " not found. Cannot unregister."))
				}
				hintPermission(p, err)
				return err
			}
			p.println(p.green("Thumbnailer has been unregistered:"), target)
			return nil
		},
	}
	addDesktopFlags(cmd)
	return cmd
}

func addDesktopFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "Thumbnailers directory (default: from config)")
	cmd.Flags().Bool("skip-gnome-check", false, "Do not require GNOME 3 or later")
}

// readDesktopSettings resolves the hook directory and checks the GNOME version.
func readDesktopSettings(cmd *cobra.Command) (*settings, string, error) {
	s, err := readSettings(cmd)
	if err != nil {
		return nil, "", err
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = s.cfg.ThumbnailersDir
	}

	if skip, _ := cmd.Flags().GetBool("skip-gnome-check"); !skip {
		v, err := desktop.RequireGNOME3(s.cfg.GNOMEVersionFile)
		if err != nil {
			return nil, "", err
		}
		s.logger.Debug("GNOME detected", "version", v.String())
	}
	return s, dir, nil
}

func hintPermission(p *printer, err error) {
	if errors.Is(err, fs.ErrPermission) {
		p.println(p.yellow("Permission denied. You may need to run this command with sudo."))
	}
}
