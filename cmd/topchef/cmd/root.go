/*
 *     Copyright 2023 The TopChef Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/TopChef/TopChef-sub000/broker/config"
	"github.com/TopChef/TopChef-sub000/broker/server"
	logger "github.com/TopChef/TopChef-sub000/internal/tclog"
)

const envPrefix = "topchef"

var (
	cfgFile string
	cfg     = config.New()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "topchef",
	Short: "schema-gated job broker for remote compute services",
	Long: `topchef is a long-running broker. Services register a pair of JSON
schemas, clients submit jobs validated against them, and workers poll for the
oldest outstanding job per service.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}

		if err := logger.InitFileLoggers(cfg.Log.Dir, cfg.Log.Compress); err != nil {
			return fmt.Errorf("init loggers: %w", err)
		}
		if cfg.Verbose {
			logger.SetLevel(zapcore.DebugLevel)
		}

		return runBroker()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file path")
	flags.Bool("verbose", false, "enable debug logging")
	flags.String("addr", ":8080", "listen address of the REST API")

	if err := viper.BindPFlag("verbose", flags.Lookup("verbose")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("server.addr", flags.Lookup("addr")); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("topchef")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/topchef")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults are complete, so a missing config file is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg.Valid()
}

func runBroker() error {
	s, _ := yaml.Marshal(cfg)
	logger.Infof("broker configuration:\n%s", string(s))

	svr, err := server.New(cfg)
	if err != nil {
		return err
	}

	return svr.Serve()
}
