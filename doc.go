// SPDX-License-Identifier: EPL-2.0

// Package audsrc reads audio streams as fixed-size blocks of PCM bytes.
//
// A data source is built from keyword options naming the input, the block
// size and the optional behaviours layered on top of it:
//
//	ds, err := audsrc.New(map[string]any{
//	    "filename":  "speech.wav",
//	    "block_dur": 0.025, // 25 ms frames
//	    "hop_dur":   0.010, // every 10 ms
//	    "max_time":  5.0,   // stop after 5 s
//	    "record":    true,  // allow Rewind on any input
//	})
//	if err != nil {
//	    // Handle error
//	}
//	defer ds.Close()
//
//	if err := ds.Open(); err != nil {
//	    // Handle error
//	}
//	for {
//	    frame, err := ds.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    // process frame
//	}
//
// Every option has a short alias ("fn", "bd", "hd", "mt", "rec", ...).
// Giving the same option twice, under any spelling, is an error. See
// package config for the full list.
//
// # Inputs
//
// Files are decoded by extension:
//   - WAV via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Raw PCM held in memory is given with "data_buffer" together with
// "sampling_rate", "sample_width" and "channels" (16000 Hz, 2 bytes and
// mono by default). NewFromSource accepts any audio.Source.
//
// # Pipelines
//
// The returned value is the outermost layer of a pipeline assembled by
// package ads: a Limiter when max_time is set, a Recorder when record is
// set and an Overlap when the hop is shorter than the block. Use ads.Layers
// or ads.Find to inspect it.
//
// # Logging and metrics
//
// Pass ads.WithLogger and ads.WithMetrics to observe a pipeline:
//
//	m, _ := observe.NewMetrics(otel.GetMeterProvider())
//	ds, err := audsrc.New(params, ads.WithLogger(slog.Default()), ads.WithMetrics(m))
package audsrc
