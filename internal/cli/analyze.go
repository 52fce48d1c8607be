package cli

import (
	"fmt"
	"sort"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jvmkit/jvmkit/pkg/analyzer"
	"github.com/jvmkit/jvmkit/pkg/classfile"
	"github.com/jvmkit/jvmkit/pkg/loader"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <path>...",
		Short: "Decode class files and lift every method body to IR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runAnalyze(cfg, logger, args)
		},
	}
}

func runAnalyze(cfg Config, logger *zap.Logger, paths []string) error {
	az := analyzer.New()
	var errs error
	for _, path := range paths {
		sources, err := loader.Discover(path)
		if err != nil {
			logger.Error("discovery failed", zap.String("path", path), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		for _, src := range sources {
			cls, err := loader.Load(src)
			if err != nil {
				logger.Error("decode failed", zap.String("class", src.Name), zap.Error(err))
				errs = multierr.Append(errs, err)
				continue
			}

			for i := range cls.Methods {
				m := &cls.Methods[i]
				ir, err := az.Analyze(m)
				if err != nil {
					logger.Error("analyze failed",
						zap.String("class", cls.This.BinaryName),
						zap.String("method", m.Name),
						zap.Error(err))
					errs = multierr.Append(errs, fmt.Errorf("%s.%s: %w", cls.This.BinaryName, m.Name, err))
					continue
				}
				if err := emitIR(cfg, cls, m, ir); err != nil {
					errs = multierr.Append(errs, err)
				}
			}
		}
	}
	return errs
}

func emitIR(cfg Config, cls *classfile.Class, m *classfile.Method, ir map[uint16]analyzer.IrInstruction) error {
	if cfg.Format == "json" {
		enc, err := json.Marshal(ir)
		if err != nil {
			return fmt.Errorf("cli: marshaling %s.%s IR: %w", cls.This.BinaryName, m.Name, err)
		}
		fmt.Println(string(enc))
		return nil
	}

	pcs := make([]uint16, 0, len(ir))
	for pc := range ir {
		pcs = append(pcs, pc)
	}
	sort.Slice(pcs, func(i, j int) bool { return pcs[i] < pcs[j] })

	fmt.Printf("%s.%s%s\n", cls.This.BinaryName, m.Name, m.Descriptor)
	for _, pc := range pcs {
		insn := ir[pc]
		fmt.Printf("  %4d: %s\n", pc, describeIR(insn))
	}
	return nil
}

func describeIR(insn analyzer.IrInstruction) string {
	s := insn.Op.String()
	if insn.Defines != nil {
		s += fmt.Sprintf(" -> v%d", insn.Defines.ID)
	}
	for _, t := range insn.BranchTargets {
		s += fmt.Sprintf(" goto %d", t)
	}
	return s
}
