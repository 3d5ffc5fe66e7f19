package internal

// GroupedSection is one rendered group: a title and the items that matched it
// in their original fetch order.
type GroupedSection struct {
	Title string
	Items []ChangeItem
}

// Grouped is the full grouped changelog, rule groups first in declaration
// order, the unlabeled bucket last.
type Grouped []GroupedSection

// Group classifies items into the declared groups. Membership is not
// exclusive: an item carrying labels from several rules appears under each of
// them. Items carrying an excluded label appear nowhere, including the
// unlabeled bucket. When includeUnlabeled is set, items matching no rule are
// collected into a final bucket titled unlabeledTitle.
func Group(items []ChangeItem, rules []GroupRule, excludeLabels []string, includeUnlabeled bool, unlabeledTitle string) Grouped {
	excluded := make(map[string]bool, len(excludeLabels))
	for _, label := range excludeLabels {
		excluded[label] = true
	}

	grouped := make(Grouped, 0, len(rules)+1)
	matched := make([]bool, len(items))
	for _, rule := range rules {
		ruleLabels := make(map[string]bool, len(rule.Labels))
		for _, label := range rule.Labels {
			ruleLabels[label] = true
		}
		section := GroupedSection{Title: rule.Title}
		for i, item := range items {
			if isExcluded(item, excluded) {
				continue
			}
			if hasAnyLabel(item, ruleLabels) {
				section.Items = append(section.Items, item)
				matched[i] = true
			}
		}
		grouped = append(grouped, section)
	}

	if includeUnlabeled {
		section := GroupedSection{Title: unlabeledTitle}
		for i, item := range items {
			if matched[i] || isExcluded(item, excluded) {
				continue
			}
			section.Items = append(section.Items, item)
		}
		grouped = append(grouped, section)
	}
	return grouped
}

func isExcluded(item ChangeItem, excluded map[string]bool) bool {
	for _, label := range item.Labels {
		if excluded[label] {
			return true
		}
	}
	return false
}

func hasAnyLabel(item ChangeItem, labels map[string]bool) bool {
	for _, label := range item.Labels {
		if labels[label] {
			return true
		}
	}
	return false
}
