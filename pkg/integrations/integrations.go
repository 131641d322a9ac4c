// Package integrations assembles the registry a workflow host selects
// integration creators and peekers from.
package integrations

import (
	"github.com/dandacompany/openai-analytics/pkg/domain"
	"github.com/dandacompany/openai-analytics/pkg/integrations/openaianalytics"
)

// NewSelector registers every integration this module ships under its
// integration type.
func NewSelector(deps domain.IntegrationDeps) domain.IntegrationSelector {
	selector := domain.NewIntegrationSelector()
	selector.RegisterCreator(domain.IntegrationType_OpenAIAnalytics, openaianalytics.NewOpenAIAnalyticsIntegrationCreator(deps))

	return selector
}
