package wizard

// toggle flips membership of label in selected, preserving order of the
// remaining entries.
func toggle(selected []string, label string) []string {
	for i, s := range selected {
		if s == label {
			return append(append([]string{}, selected[:i]...), selected[i+1:]...)
		}
	}
	return append(append([]string{}, selected...), label)
}

// allSelected reports whether every generated label is currently selected.
// An empty generated set is never "all selected".
func allSelected(generated, selected []string) bool {
	if len(generated) == 0 {
		return false
	}
	for _, g := range generated {
		if !contains(selected, g) {
			return false
		}
	}
	return true
}

// selectAll toggles between everything and nothing: if the whole generated
// set is selected it clears the selection, otherwise it selects exactly the
// generated set.
func selectAll(generated, selected []string) []string {
	if allSelected(generated, selected) {
		return []string{}
	}
	return append([]string{}, generated...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
