package bootstrap

import (
	"github.com/hummbl-dev/models-api/config"
	"github.com/hummbl-dev/models-api/internal/models/service"
)

// BuildModelService wires the upstream client, the document cache and the
// model pipelines. publisher may be nil.
func BuildModelService(up config.UpstreamConfig, publisher service.EventPublisher) *service.ModelService {
	metrics := &service.Metrics{}
	client := service.NewUpstreamClient(up.ModelsURL, up.FetchTimeout, metrics)

	opts := []service.CacheOption{service.WithMetrics(metrics)}
	if publisher != nil {
		opts = append(opts, service.WithPublisher(publisher))
	}
	return service.NewModelService(service.NewDocumentCache(client, opts...))
}
