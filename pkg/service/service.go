// Package service exposes the p256 operations over NATS request/reply.
// Each subject gets a queue subscription so multiple daemon instances
// share load; every handler is a pure bytes-in/bytes-out function with
// no state between requests.
package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/luxfi/p256/pkg/event"
	"github.com/luxfi/p256/pkg/p256"
)

var errBadRequest = errors.New("could not decode request")

// Handler processes one encoded request and returns the encoded result.
type Handler func(data []byte) []byte

// Service subscribes the operation handlers to their subjects.
type Service struct {
	nc         *nats.Conn
	queueGroup string
	log        zerolog.Logger
	subs       []*nats.Subscription
}

// New creates a service on an established NATS connection.
func New(nc *nats.Conn, queueGroup string, log zerolog.Logger) *Service {
	return &Service{nc: nc, queueGroup: queueGroup, log: log}
}

// Handlers maps every request subject to its handler.
func (s *Service) Handlers() map[string]Handler {
	return map[string]Handler{
		event.KeygenRequestTopic:      s.HandleKeygen,
		event.DeriveRequestTopic:      s.HandleDerive,
		event.ValidateRequestTopic:    s.HandleValidate,
		event.SignRequestTopic:        s.HandleSign,
		event.VerifyRequestTopic:      s.HandleVerify,
		event.CoordinatesRequestTopic: s.HandleCoordinates,
		event.CompressRequestTopic:    s.HandleCompress,
	}
}

// Start opens a queue subscription per subject and begins serving.
func (s *Service) Start() error {
	handlers := s.Handlers()
	for subject, handle := range handlers {
		sub, err := s.nc.QueueSubscribe(subject, s.queueGroup, func(msg *nats.Msg) {
			if msg.Reply == "" {
				s.log.Warn().Str("subject", msg.Subject).Msg("Dropping request without reply subject")
				return
			}
			if err := msg.Respond(handle(msg.Data)); err != nil {
				s.log.Error().Err(err).Str("subject", msg.Subject).Msg("Failed to respond")
			}
		})
		if err != nil {
			s.Stop()
			return err
		}
		s.subs = append(s.subs, sub)
	}
	s.log.Info().
		Strs("subjects", lo.Keys(handlers)).
		Str("queue", s.queueGroup).
		Msg("p256 service started")
	return nil
}

// Stop drains all subscriptions.
func (s *Service) Stop() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.log.Error().Err(err).Msg("Failed to unsubscribe")
		}
	}
	s.subs = nil
}

// HandleKeygen serves p256.keygen.
func (s *Service) HandleKeygen(data []byte) []byte {
	var req event.KeygenRequest
	if err := event.Unmarshal(data, &req); err != nil {
		return s.encode(event.KeygenResult{Result: badRequest(err)})
	}
	id := ensureRequestID(req.RequestID)
	kp, err := p256.GenerateKeypair()
	if err != nil {
		return s.encode(event.KeygenResult{Result: event.Failure(id, err)})
	}
	return s.encode(event.KeygenResult{
		Result:    event.Success(id),
		SecretKey: kp.SecretKey,
		PublicKey: kp.PublicKey,
	})
}

// HandleDerive serves p256.derive.
func (s *Service) HandleDerive(data []byte) []byte {
	var req event.DeriveRequest
	if err := event.Unmarshal(data, &req); err != nil {
		return s.encode(event.DeriveResult{Result: badRequest(err)})
	}
	id := ensureRequestID(req.RequestID)
	public, err := p256.DerivePublicKey(req.SecretKey)
	if err != nil {
		return s.encode(event.DeriveResult{Result: event.Failure(id, err)})
	}
	return s.encode(event.DeriveResult{Result: event.Success(id), PublicKey: public})
}

// HandleValidate serves p256.validate.
func (s *Service) HandleValidate(data []byte) []byte {
	var req event.ValidateRequest
	if err := event.Unmarshal(data, &req); err != nil {
		return s.encode(event.ValidateResult{Result: badRequest(err)})
	}
	id := ensureRequestID(req.RequestID)
	valid, err := p256.ValidatePublicKey(req.PublicKey)
	if err != nil {
		return s.encode(event.ValidateResult{Result: event.Failure(id, err)})
	}
	return s.encode(event.ValidateResult{Result: event.Success(id), Valid: valid})
}

// HandleSign serves p256.sign.
func (s *Service) HandleSign(data []byte) []byte {
	var req event.SignRequest
	if err := event.Unmarshal(data, &req); err != nil {
		return s.encode(event.SignResult{Result: badRequest(err)})
	}
	id := ensureRequestID(req.RequestID)
	var (
		sig []byte
		err error
	)
	if len(req.Ephemeral) > 0 {
		sig, err = p256.SignWithEphemeral(req.SecretKey, req.Message, req.Ephemeral)
	} else {
		sig, err = p256.Sign(req.SecretKey, req.Message)
	}
	if err != nil {
		return s.encode(event.SignResult{Result: event.Failure(id, err)})
	}
	return s.encode(event.SignResult{Result: event.Success(id), Signature: sig})
}

// HandleVerify serves p256.verify.
func (s *Service) HandleVerify(data []byte) []byte {
	var req event.VerifyRequest
	if err := event.Unmarshal(data, &req); err != nil {
		return s.encode(event.VerifyResult{Result: badRequest(err)})
	}
	id := ensureRequestID(req.RequestID)
	valid, err := p256.Verify(req.PublicKey, req.Message, req.Signature)
	if err != nil {
		return s.encode(event.VerifyResult{Result: event.Failure(id, err)})
	}
	return s.encode(event.VerifyResult{Result: event.Success(id), Valid: valid})
}

// HandleCoordinates serves p256.coordinates.
func (s *Service) HandleCoordinates(data []byte) []byte {
	var req event.CoordinatesRequest
	if err := event.Unmarshal(data, &req); err != nil {
		return s.encode(event.CoordinatesResult{Result: badRequest(err)})
	}
	id := ensureRequestID(req.RequestID)
	x, y, err := p256.Coordinates(req.PublicKey)
	if err != nil {
		return s.encode(event.CoordinatesResult{Result: event.Failure(id, err)})
	}
	return s.encode(event.CoordinatesResult{Result: event.Success(id), X: x, Y: y})
}

// HandleCompress serves p256.compress.
func (s *Service) HandleCompress(data []byte) []byte {
	var req event.CompressRequest
	if err := event.Unmarshal(data, &req); err != nil {
		return s.encode(event.CompressResult{Result: badRequest(err)})
	}
	id := ensureRequestID(req.RequestID)
	compressed, err := p256.Compress(req.PublicKey)
	if err != nil {
		return s.encode(event.CompressResult{Result: event.Failure(id, err)})
	}
	return s.encode(event.CompressResult{Result: event.Success(id), Compressed: compressed})
}

func (s *Service) encode(v interface{}) []byte {
	out, err := event.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal result")
		fallback, _ := event.Marshal(event.Result{
			ResultType: event.ResultTypeError,
			ErrorCode:  event.ErrorCodeInternal,
		})
		return fallback
	}
	return out
}

func badRequest(err error) event.Result {
	return event.Result{
		ResultType:  event.ResultTypeError,
		ErrorCode:   event.ErrorCodeBadRequest,
		ErrorReason: errBadRequest.Error() + ": " + err.Error(),
	}
}

func ensureRequestID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
