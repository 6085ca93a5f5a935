// SPDX-License-Identifier: EPL-2.0

// Package config resolves keyword options into a pipeline configuration.
//
// Options may be spelled in full or with a short alias:
//
//	filename      fn
//	data_buffer   db
//	sampling_rate sr
//	sample_width  sw
//	channels      ch
//	block_size    bs
//	block_dur     bd
//	hop_size      hs
//	hop_dur       hd
//	max_time      mt
//	record        rec
//
// Giving the same option twice fails with ErrDuplicateArgument, as does
// giving a size and a duration for the block or for the hop, or both a
// filename and a data buffer.
//
// Options come from a map (Parse) or from a file readable by viper
// (LoadFile). Durations are converted to samples only when the source is
// known, by Settings.Config.
package config
