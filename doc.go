// Package avscale is a streaming video frame transform stage: it receives
// raw RGB24 or YUV420P frames of a negotiated resolution and produces frames
// of the requested output resolution. In the aspect-ratio-correct mode the
// input is first center-cropped to the output aspect ratio, so that the
// scaling is uniform on both axes.
//
// ScaleFilter is not safe for concurrent use, see Locked.
package avscale
