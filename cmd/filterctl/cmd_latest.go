package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/angelmondragon/ridefinderz-filters/pkg/config"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
	"github.com/angelmondragon/ridefinderz-filters/pkg/redis"
)

func newLatestCmd() *cobra.Command {
	var redisURL string
	cmd := &cobra.Command{
		Use:   "latest <session-id>",
		Short: "Print the latest criteria a session handed to redis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id: %w", err)
			}
			if redisURL == "" {
				redisURL = os.Getenv(config.EnvRedisURL)
			}
			if redisURL == "" {
				return fmt.Errorf("--redis-url or %s is required", config.EnvRedisURL)
			}

			logg := logger.New(logger.Options{
				ServiceName: "filterctl",
				Level:       logger.ParseLevel("error"),
				Output:      cmd.ErrOrStderr(),
			})
			client, err := redis.New(cmd.Context(), config.RedisConfig{
				URL:         redisURL,
				DialTimeout: 5 * time.Second,
				ReadTimeout: 5 * time.Second,
			}, logg)
			if err != nil {
				return err
			}
			defer client.Close()

			stored, err := client.LatestCriteria(cmd.Context(), id.String())
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("no criteria stored for session %s", id)
			}
			if err != nil {
				return err
			}
			cmd.PrintErrf("emission %d\n", stored.Seq)
			fmt.Fprintln(cmd.OutOrStdout(), stored.Payload)
			return nil
		},
	}
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "redis connection url (defaults to "+config.EnvRedisURL+")")
	return cmd
}
