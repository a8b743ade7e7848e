// Package static resuelve cupos de plan desde una tabla fija,
// opcionalmente reemplazada por un archivo YAML.
package static

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"petcontrol/internal/ports/plans"
)

// DefaultPlan es el plan asignado cuando el producto no se reconoce.
const DefaultPlan = "Essencial"

var ErrUnknownPlan = errors.New("unknown plan")

// Plan es una fila de la tabla de planes.
type Plan struct {
	Name     string   `yaml:"name" json:"name"`
	PetLimit int      `yaml:"pet_limit" json:"pet_limit"`
	Products []string `yaml:"products,omitempty" json:"-"`
}

type file struct {
	Plans []Plan `yaml:"plans"`
}

// Resolver implementa plans.Resolver.
type Resolver struct {
	plans []Plan
}

var _ plans.Resolver = (*Resolver)(nil)

// Default devuelve la tabla de siempre: Essencial=1, Plus=4, Elite=15.
func Default() *Resolver {
	return &Resolver{plans: []Plan{
		{Name: "Essencial", PetLimit: 1},
		{Name: "Plus", PetLimit: 4},
		{Name: "Elite", PetLimit: 15},
	}}
}

// LoadFile lee la tabla desde YAML. Path vacío => Default().
//
//	plans:
//	  - name: Essencial
//	    pet_limit: 1
//	    products: ["prod_abc"]
func LoadFile(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plans file: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Resolver, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("plans file: %w", err)
	}
	if len(f.Plans) == 0 {
		return nil, errors.New("plans file: no plans defined")
	}
	seen := map[string]bool{}
	for _, p := range f.Plans {
		if strings.TrimSpace(p.Name) == "" {
			return nil, errors.New("plans file: plan without name")
		}
		if p.PetLimit < 1 {
			return nil, fmt.Errorf("plans file: %s: pet_limit must be >= 1", p.Name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("plans file: duplicate plan %q", p.Name)
		}
		seen[p.Name] = true
	}
	return &Resolver{plans: f.Plans}, nil
}

func (r *Resolver) PetLimit(_ context.Context, plan string) (int, error) {
	for _, p := range r.plans {
		if strings.EqualFold(p.Name, plan) {
			return p.PetLimit, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
}

// PlanForProduct mapea el id de producto del checkout a un plan.
func (r *Resolver) PlanForProduct(productID string) string {
	for _, p := range r.plans {
		for _, id := range p.Products {
			if id == productID {
				return p.Name
			}
		}
	}
	return DefaultPlan
}

// Plans devuelve la tabla ordenada por cupo.
func (r *Resolver) Plans() []Plan {
	out := append([]Plan(nil), r.plans...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PetLimit < out[j].PetLimit })
	return out
}
