package cli

import (
	"fmt"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jvmkit/jvmkit/pkg/classfile"
	"github.com/jvmkit/jvmkit/pkg/loader"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <path>...",
		Short: "Decode class files from a directory, .jar, .jmod, or single .class file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runDecode(cfg, logger, args)
		},
	}
}

func runDecode(cfg Config, logger *zap.Logger, paths []string) error {
	var errs error
	for _, path := range paths {
		sources, err := loader.Discover(path)
		if err != nil {
			logger.Error("discovery failed", zap.String("path", path), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		logger.Debug("discovered class entries", zap.String("path", path), zap.Int("count", len(sources)))

		for _, src := range sources {
			cls, err := loader.Load(src)
			if err != nil {
				logger.Error("decode failed", zap.String("class", src.Name), zap.Error(err))
				errs = multierr.Append(errs, err)
				continue
			}
			if err := emitClass(cfg, cls); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

func emitClass(cfg Config, cls *classfile.Class) error {
	if cfg.Format == "json" {
		enc, err := json.Marshal(cls)
		if err != nil {
			return fmt.Errorf("cli: marshaling %s: %w", cls.This, err)
		}
		fmt.Println(string(enc))
		return nil
	}

	super := "(none)"
	if cls.Super != nil {
		super = cls.Super.String()
	}
	fmt.Printf("class %s (version %d.%d) extends %s\n", cls.This, cls.Version.Major, cls.Version.Minor, super)
	for _, iface := range cls.Interfaces {
		fmt.Printf("  implements %s\n", iface)
	}
	for _, f := range cls.Fields {
		fmt.Printf("  field %s %s\n", f.Name, f.FieldType)
	}
	for _, m := range cls.Methods {
		fmt.Printf("  method %s%s\n", m.Name, m.Descriptor)
	}
	return nil
}
