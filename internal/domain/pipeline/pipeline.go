package pipeline

// Pipeline is the ordered list of steps a run walks through.
type Pipeline struct {
	Name  string
	Steps []Step
}

// Validate ensures the pipeline satisfies all invariants.
func (p Pipeline) Validate() error {
	if p.Name == "" {
		return newMissingFieldError("name")
	}
	if len(p.Steps) == 0 {
		return newValidationError("pipeline requires at least one step", nil)
	}

	seen := make(map[string]struct{}, len(p.Steps))
	for _, step := range p.Steps {
		if err := step.Validate(); err != nil {
			return err
		}
		if _, ok := seen[step.ID]; ok {
			return newDuplicateError(step.ID)
		}
		seen[step.ID] = struct{}{}
	}

	return p.ValidateDependencies()
}

// ValidateDependencies ensures all dependencies exist, no cycles occur and
// every dependency is declared before the step that needs it, since steps run
// strictly in declaration order.
func (p Pipeline) ValidateDependencies() error {
	lookup := make(map[string]Step, len(p.Steps))
	position := make(map[string]int, len(p.Steps))
	for i, step := range p.Steps {
		lookup[step.ID] = step
		position[step.ID] = i
	}

	for _, step := range p.Steps {
		for _, dep := range step.DependsOn {
			if dep == step.ID {
				return newDependencyError("step cannot depend on itself", map[string]any{"step_id": step.ID})
			}
			if _, ok := lookup[dep]; !ok {
				return newDependencyError("dependency not found", map[string]any{"step_id": step.ID, "missing_dependency": dep})
			}
		}
	}

	visited := make(map[string]bool, len(p.Steps))
	stack := make(map[string]bool, len(p.Steps))
	var path []string
	var detect func(string) *DomainError
	detect = func(id string) *DomainError {
		visited[id] = true
		stack[id] = true
		path = append(path, id)

		for _, dep := range lookup[id].DependsOn {
			if !visited[dep] {
				if err := detect(dep); err != nil {
					return err
				}
			} else if stack[dep] {
				cycle := append([]string(nil), path...)
				cycle = append(cycle, dep)
				return newCycleError(cycle)
			}
		}

		stack[id] = false
		path = path[:len(path)-1]
		return nil
	}

	for _, step := range p.Steps {
		if !visited[step.ID] {
			if err := detect(step.ID); err != nil {
				return err
			}
		}
	}

	for _, step := range p.Steps {
		for _, dep := range step.DependsOn {
			if position[dep] > position[step.ID] {
				return newOrderError(step.ID, dep)
			}
		}
	}

	return nil
}

// GetStep retrieves a step by identifier.
func (p Pipeline) GetStep(id string) (*Step, error) {
	for i := range p.Steps {
		if p.Steps[i].ID == id {
			step := p.Steps[i]
			return &step, nil
		}
	}
	return nil, newNotFoundError(id)
}

// Dependents lists, in pipeline order, the steps that depend directly on id.
func (p Pipeline) Dependents(id string) ([]string, error) {
	if _, err := p.GetStep(id); err != nil {
		return nil, err
	}
	var dependents []string
	for _, step := range p.Steps {
		if step.HasDependency(id) {
			dependents = append(dependents, step.ID)
		}
	}
	return dependents, nil
}

// IDs lists step identifiers in execution order.
func (p Pipeline) IDs() []string {
	ids := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		ids[i] = step.ID
	}
	return ids
}
