// SPDX-License-Identifier: EPL-2.0

// Package ads provides block-oriented audio data sources.
//
// A DataSource is built around an audio.Source and returns fixed-size
// blocks of PCM bytes. Three decorators add behaviour on top of it:
//
//   - Limiter stops after a maximum number of samples, rounded up to a
//     whole block.
//   - Recorder keeps what was read so the stream can be rewound and
//     replayed, whether or not the source can seek.
//   - Overlap returns overlapping frames of BlockSize samples advancing by
//     HopSize samples.
//
// New assembles them in a fixed order from a resolved Config:
//
//	ds, err := ads.New(ads.Config{
//	    Source:     src,
//	    BlockSize:  400, // 25 ms at 16 kHz
//	    HopSize:    160, // 10 ms
//	    MaxSamples: 16000 * 5,
//	    Record:     true,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := ds.Open(); err != nil {
//	    return err
//	}
//	defer ds.Close()
//
//	for {
//	    frame, err := ds.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // process frame
//	}
//
// Frame i of an Overlap is always identical to the BlockSize samples found
// at sample i*HopSize of the underlying stream.
//
// Pipelines are meant for a single caller and are not safe for concurrent
// use.
package ads
