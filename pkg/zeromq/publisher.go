package zeromq

import (
	"github.com/vilo159/amiga-joystick-tutorial/domain/telemetry"
	"github.com/vilo159/amiga-joystick-tutorial/domain/video"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

// Topics
const (
	TopicFramePrefix = "frame."
	TopicTelemetry   = "telemetry"
)

// Publisher republishes camera frames and telemetry. Frames go out as the
// compressed bytes received from the camera on "frame.<view>"; telemetry
// goes out as JSON on "telemetry".
type Publisher struct {
	service *ZeroMQService
	logger  customlog.Logger
}

var (
	_ video.Sink     = (*Publisher)(nil)
	_ telemetry.Sink = (*Publisher)(nil)
)

// NewPublisher creates a new publisher on top of service
func NewPublisher(service *ZeroMQService, logger customlog.Logger) *Publisher {
	return &Publisher{
		service: service,
		logger:  logger,
	}
}

// PresentFrame implements video.Sink
func (p *Publisher) PresentFrame(f video.Frame) {
	if len(f.Data) == 0 {
		return
	}
	if err := p.service.PublishMessage(TopicFramePrefix+f.View, f.Data); err != nil {
		p.logger.Debugf("Dropped %s frame %d: %v", f.View, f.Sequence, err)
	}
}

// PresentTelemetry implements telemetry.Sink
func (p *Publisher) PresentTelemetry(s telemetry.Snapshot) {
	if err := p.service.PublishJSON(TopicTelemetry, MsgTypeTelemetry, s); err != nil {
		p.logger.Debugf("Dropped telemetry: %v", err)
	}
}
