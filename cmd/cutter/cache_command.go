package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"cutter/internal/transcriptcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the transcript cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCache(cmd, func(cache *transcriptcache.Cache) error {
				entries, err := cache.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Cached transcripts: none")
					return nil
				}
				const stampLayout = "2006-01-02 15:04"
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						filepath.Base(entry.SourcePath),
						entry.Key.Model,
						entry.Key.Language,
						strconv.Itoa(entry.SegmentCount),
						entry.CreatedAt.Local().Format(stampLayout),
						shortFingerprint(entry.Key.Fingerprint),
					})
				}
				fmt.Fprintln(out, renderTable([]tableColumn{
					{Header: "Source", Wrap: true},
					{Header: "Model"},
					{Header: "Lang"},
					{Header: "Segments", Align: alignRight},
					{Header: "Cached"},
					{Header: "Fingerprint"},
				}, rows))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCache(cmd, func(cache *transcriptcache.Cache) error {
				removed, err := cache.Clear(cmd.Context())
				if err != nil {
					return err
				}
				if removed == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Transcript cache already empty")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached transcript(s)\n", removed)
				return nil
			})
		},
	}
}

func (c *commandContext) withCache(cmd *cobra.Command, fn func(*transcriptcache.Cache) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Transcript cache is disabled (set [cache] enabled = true in config.toml)")
		return nil
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	cache, err := transcriptcache.Open(cfg.Cache.Path, logger)
	if err != nil {
		return err
	}
	defer cache.Close()
	return fn(cache)
}

func shortFingerprint(value string) string {
	if len(value) <= 12 {
		return value
	}
	return value[:12]
}
