package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-gorm/wherex"
	"github.com/go-gorm/wherex/dialect"
	"github.com/go-gorm/wherex/logger"
)

// newRootCmd flags may also be set with WHEREX_ environment variables, e.g. WHEREX_LOG_LEVEL=info
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WHEREX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "wherex",
		Short:         "Render LIKE and JSON any-of predicates for a SQL dialect",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("dialect", "mysql", "mysql, postgres, sqlite or sqlserver, any other driver name renders mysql templates")
	flags.String("table", "records", "table the statement selects from")
	flags.String("log-level", "warn", "silent, error, warn or info")
	flags.String("logger", "default", "default, zap, zerolog, logrus or slog")
	flags.Bool("explain", false, "also print the statement with its bindings inlined")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(likeCmd(v), jsonAnyCmd(v))
	return root
}

func likeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "like COLUMN PATTERN",
		Short: "Render a %PATTERN% substring match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []wherex.LikeOption
			if caseSensitive, _ := cmd.Flags().GetBool("case-sensitive"); caseSensitive {
				opts = append(opts, wherex.CaseSensitive())
			}
			if escape, _ := cmd.Flags().GetBool("escape"); escape {
				opts = append(opts, wherex.EscapeWildcards())
			}

			return render(cmd, v, "like", func(db *wherex.DB) *wherex.DB {
				return db.WhereLike(args[0], args[1], opts...)
			})
		},
	}

	cmd.Flags().Bool("case-sensitive", false, "match the column's case as is")
	cmd.Flags().Bool("escape", false, "match %, _ and \\ in the pattern literally")
	return cmd
}

func jsonAnyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json-any COLUMN [VALUE...]",
		Short: "Render a match of rows whose JSON array column contains any of the values",
		Long: "Positional values are strings, use --json to pass a JSON array of scalars instead:\n\n" +
			`  wherex json-any tags --json '["electronics", 2, true, null]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]interface{}, 0, len(args)-1)
			for _, arg := range args[1:] {
				values = append(values, arg)
			}

			if raw, _ := cmd.Flags().GetString("json"); raw != "" {
				decoded, err := decodeValues(raw)
				if err != nil {
					return err
				}
				values = append(values, decoded...)
			}

			return render(cmd, v, "json-any", func(db *wherex.DB) *wherex.DB {
				return db.WhereJSONContainsAny(args[0], values...)
			})
		},
	}

	cmd.Flags().String("json", "", "JSON array of scalar values")
	return cmd
}

// decodeValues keeps numbers as json.Number so they are rendered as written
func decodeValues(raw string) ([]interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var values []interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("invalid --json %q: %w", raw, err)
	}
	return values, nil
}

func render(cmd *cobra.Command, v *viper.Viper, name string, where func(*wherex.DB) *wherex.DB) error {
	l, err := newLogger(v.GetString("logger"), logger.ParseLevel(v.GetString("log-level")), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	d := dialect.Parse(v.GetString("dialect"))
	if d == dialect.Unknown {
		l.Warn(cmd.Context(), "unknown dialect %q, rendering mysql templates", v.GetString("dialect"))
	}

	tx := where(wherex.ForDialect(d, &wherex.Config{Logger: l}).Table(v.GetString("table")))
	sql, vars, err := tx.ToSQL()
	if err != nil {
		l.Error(cmd.Context(), "%s: %v", name, err)
		return err
	}
	l.Info(cmd.Context(), "rendered %s predicate for %s", name, d)

	bindings, err := json.Marshal(vars)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, sql)
	fmt.Fprintln(out, "bindings:", string(bindings))

	if v.GetBool("explain") {
		explained, err := tx.Explain()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "explain:", explained)
	}
	return nil
}

func newLogger(backend string, level logger.LogLevel, w io.Writer) (logger.Interface, error) {
	config := logger.Config{LogLevel: level}

	switch backend {
	case "", "default":
		return logger.New(log.New(w, "", log.LstdFlags), config), nil
	case "zap":
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(w), logger.ZapLevel(level))
		return logger.NewZapLogger(zap.New(core), config), nil
	case "zerolog":
		return logger.NewZerologLogger(zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger(), config), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(logrus.DebugLevel)
		return logger.NewLogrusLogger(l, config), nil
	case "slog":
		return logger.NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})), config), nil
	default:
		return nil, fmt.Errorf("unknown logger %q", backend)
	}
}
