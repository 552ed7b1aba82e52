package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/internal/catalog"
	"github.com/greenbasket/grocer-cli/internal/extract"
	"github.com/greenbasket/grocer-cli/internal/inventory"
	"github.com/greenbasket/grocer-cli/internal/planner"
	anthropicpkg "github.com/greenbasket/grocer-cli/pkg/anthropic"
)

var (
	planPrompt       string
	planIngredients  []string
	planForms        map[string]string
	planServings     int
	planTrace        bool
	planFormat       string
	planOutput       string
	planDB           string
	planMaxCand      int
	planCheaperRatio float64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a cart from a prompt or an explicit ingredient list",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if planPrompt == "" && len(planIngredients) == 0 {
			return eris.New("plan: provide --prompt or --ingredients")
		}

		applyPlanOverrides()

		req := planner.PlanRequest{
			Prompt:       planPrompt,
			Ingredients:  planIngredients,
			Forms:        planForms,
			Servings:     planServings,
			IncludeTrace: planTrace,
		}

		// With a prompt and no explicit list, extract ingredients via Claude.
		if len(req.Ingredients) == 0 {
			if err := cfg.Validate("extract"); err != nil {
				return err
			}
			ex := extract.New(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
			result, err := ex.Extract(ctx, req.Prompt)
			if err != nil {
				return err
			}
			for _, m := range result.Mentions {
				req.Ingredients = append(req.Ingredients, m.Name)
				if m.Form != "" {
					if req.Forms == nil {
						req.Forms = make(map[string]string)
					}
					req.Forms[m.Name] = m.Form
				}
			}
			if req.Servings == 0 {
				req.Servings = result.Servings
			}
		}

		p, closeStore, err := buildPlanner(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		plan, err := p.Plan(ctx, req)
		if err != nil {
			return err
		}

		return renderPlan(plan, planFormat, planOutput)
	},
}

// applyPlanOverrides folds command-line tuning flags into the loaded config.
func applyPlanOverrides() {
	if planDB != "" {
		cfg.Store.DatabaseURL = planDB
	}
	if planMaxCand > 0 {
		cfg.Retrieval.MaxCandidates = planMaxCand
	}
	if planCheaperRatio > 0 {
		cfg.Scoring.CheaperRatio = planCheaperRatio
	}
}

// buildPlanner opens the inventory store and wires the pipeline.
func buildPlanner(ctx context.Context) (*planner.Planner, func(), error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, nil, err
	}

	st, err := inventory.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	ewg := catalog.NewClassifier()
	if cfg.Data.EWGFile != "" {
		ewg, err = catalog.LoadClassifier(cfg.Data.EWGFile)
		if err != nil {
			st.Close()
			return nil, nil, err
		}
	}

	retriever := inventory.NewRetriever(st, cfg.Retrieval.MaxCandidates)
	p := planner.New(cfg, retriever, ewg)

	return p, func() {
		if err := st.Close(); err != nil {
			zap.L().Warn("close store", zap.Error(err))
		}
	}, nil
}

func init() {
	planCmd.Flags().StringVar(&planPrompt, "prompt", "", "free-text recipe request")
	planCmd.Flags().StringSliceVar(&planIngredients, "ingredients", nil, "explicit ingredient list (skips extraction)")
	planCmd.Flags().StringToStringVar(&planForms, "form", nil, "per-ingredient form override, e.g. ginger=fresh")
	planCmd.Flags().IntVar(&planServings, "servings", 0, "serving count")
	planCmd.Flags().BoolVar(&planTrace, "trace", false, "attach per-ingredient decision traces")
	planCmd.Flags().StringVar(&planFormat, "format", "table", "output format: table, json, csv, xlsx")
	planCmd.Flags().StringVar(&planOutput, "output", "", "output file (default stdout; required for xlsx)")
	planCmd.Flags().StringVar(&planDB, "db", "", "inventory database URL (overrides config)")
	planCmd.Flags().IntVar(&planMaxCand, "max-candidates", 0, "retrieval cap per ingredient (overrides config)")
	planCmd.Flags().Float64Var(&planCheaperRatio, "cheaper-ratio", 0, "cheaper-alternative price ceiling as a fraction of the winner's price")
	rootCmd.AddCommand(planCmd)
}
