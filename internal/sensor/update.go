package sensor

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/homegate/internal/alert"
	"github.com/nerrad567/homegate/internal/catalog"
	"github.com/nerrad567/homegate/internal/notification"
	"github.com/nerrad567/homegate/internal/reading"
)

// Update validates value for (room, kind) and runs the write pipeline.
// present is false when the request carried no value at all.
//
// For face_id with a configured detector the body value is ignored and the
// detector result is written instead, with its name and timestamp.
//
// Returns the stored record. Rejections wrap catalog.ErrInvalid; anything
// else is a collaborator failure.
func (s *Service) Update(ctx context.Context, room, kind string, value any, present bool) (reading.Record, error) {
	var (
		rec reading.Record
		sev catalog.Severity
	)

	if kind == catalog.KindFaceID && s.detector != nil {
		if _, err := s.registry.Lookup(kind, room, false); err != nil {
			s.metrics.ReadingRejected(s.kindLabel(kind))
			return reading.Record{}, err
		}
		det, err := s.detector.Detect(ctx)
		if err != nil {
			return reading.Record{}, fmt.Errorf("detecting face for %s: %w", room, err)
		}
		rec = faceRecord(det.Detected, det.Name, det.Timestamp)
	} else {
		outcome, err := s.registry.Validate(catalog.Request{Room: room, Kind: kind, Value: value, Present: present}, false)
		if err != nil {
			s.metrics.ReadingRejected(s.kindLabel(kind))
			return reading.Record{}, err
		}
		sev = outcome.Severity
		rec = reading.Record{Value: outcome.Value, Severity: sev}
	}

	stored, err := s.writer.Write(ctx, reading.Sensors, room, kind, rec)
	if err != nil {
		return reading.Record{}, err
	}
	s.metrics.ReadingWritten(reading.Sensors.Current, s.kindLabel(kind))
	s.mirror(room, kind, stored)

	if level, ok := stored.Value.(int64); ok && sev.Escalates() {
		s.escalate(ctx, room, level, stored)
	}
	return stored, nil
}

func faceRecord(detected bool, name string, ts reading.Timestamp) reading.Record {
	value := catalog.FaceNotDetected
	if detected {
		value = catalog.FaceDetected
	}
	return reading.Record{Value: value, Name: name, Timestamp: ts}
}

// mirror forwards numeric readings to the recorder.
func (s *Service) mirror(room, kind string, rec reading.Record) {
	if s.recorder == nil {
		return
	}

	var v float64
	switch n := rec.Value.(type) {
	case float64:
		v = n
	case int64:
		v = float64(n)
	default:
		return
	}

	at, ok := rec.Timestamp.Time()
	if !ok {
		at = time.Now()
	}
	s.recorder.RecordReading(room, kind, v, string(rec.Severity), at)
}

// escalate sends the gas alert and stores the gas_alert notification.
// Failures are logged and counted only.
func (s *Service) escalate(ctx context.Context, room string, level int64, rec reading.Record) {
	msg := alert.GasAlert(level, string(rec.Severity), string(rec.Timestamp))

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.alertTimeout)
	err := s.alerts.Send(sendCtx, msg)
	cancel()
	s.metrics.AlertSent(msg.Topic, err)
	if err != nil {
		s.logger.Error("gas alert send failed", "room", room, "gas_level", level, "error", err)
	} else {
		s.logger.Warn("gas alert sent", "room", room, "gas_level", level)
	}

	n := notification.Notification{
		Title:    msg.Title,
		Message:  msg.Body,
		Type:     notification.TypeGasAlert,
		Severity: string(rec.Severity),
		GasLevel: &level,
		Time:     rec.Timestamp,
	}
	if _, err := s.notifier.Push(ctx, n); err != nil {
		s.logger.Error("storing gas notification failed", "room", room, "gas_level", level, "error", err)
	}
}
