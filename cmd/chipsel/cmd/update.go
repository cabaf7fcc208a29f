// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "green/chipsel"

var errDevBuild = errors.New("cannot update development build; install a release version")

var checkOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update chipsel to the latest version",
	Long:  `Check for and install updates from GitHub releases.`,
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for updates, don't install")
}

// parseVersion turns a build version such as v1.2.3+dirty into semver
func parseVersion(v string) (semver.Version, error) {
	if v == "" || v == "dev" {
		return semver.Version{}, errDevBuild
	}
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexByte(v, '+'); i >= 0 {
		v = v[:i]
	}
	parsed, err := semver.Parse(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid version format %q: %w", v, err)
	}
	return parsed, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	current, err := parseVersion(version)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Current version: %s\n", version)
	fmt.Fprintln(out, "Checking for updates...")

	// Public repository, no token needed
	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}
	latest, found, err := updater.DetectLatest(repoSlug)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		fmt.Fprintln(out, "No releases found.")
		return nil
	}

	if latest.Version.LTE(current) {
		fmt.Fprintf(out, "Already up to date (latest: v%s)\n", latest.Version)
		return nil
	}

	fmt.Fprintf(out, "New version available: v%s\n", latest.Version)
	if checkOnly {
		fmt.Fprintln(out, "\nRun 'chipsel update' to install.")
		return nil
	}

	fmt.Fprintln(out, "Downloading and installing...")
	release, err := updater.UpdateSelf(current, repoSlug)
	if err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	fmt.Fprintf(out, "Successfully updated to v%s\n", release.Version)

	if latest.ReleaseNotes != "" {
		fmt.Fprintln(out, "\nRelease notes:")
		fmt.Fprintln(out, latest.ReleaseNotes)
	}
	return nil
}
