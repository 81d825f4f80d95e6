// Package facerecog connects the gateway to an external face recognition
// service.
//
// Two flows exist. The recognition service pushes results to the gateway
// (Service.Ingest, POST /api/face-recognition), which stores them under the
// reporting device and raises a notification. The gateway can also pull a
// result on demand (Detector) when a client writes the face_id sensor.
package facerecog
