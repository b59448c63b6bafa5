// Package predicate provides a bridge between the query engine and Lua-based
// custom filter scripts.
//
// A filter script defines a global function:
//
//	--- Decides whether a stream stays in the result.
//	-- @param stream table Stream attributes (itag, mime_type, resolution, ...)
//	-- @return boolean
//	function Keep(stream)
//		return stream.bitrate >= 1000000
//	end
//
// The stream table mirrors the sortable attribute names plus the track flags
// (includes_audio_track, includes_video_track, is_progressive, is_adaptive).
package predicate

import (
	"fmt"

	"github.com/vidq-cli/vidq/filesystem"
	"github.com/vidq-cli/vidq/log"
	"github.com/vidq-cli/vidq/stream"
	lua "github.com/yuin/gopher-lua"
)

// KeepFn is the required global function name of a filter script.
const KeepFn = "Keep"

// FromFile executes a Lua filter script and returns its Keep function as a
// stream predicate. Script compilation or a missing Keep function is a hard
// error; a runtime error inside Keep fails that predicate call closed (the
// stream is dropped) and is logged.
func FromFile(path string) (stream.Predicate, error) {
	script, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load filter script: %w", err)
	}

	state := lua.NewState()

	if err := state.DoString(string(script)); err != nil {
		return nil, fmt.Errorf("execute filter script %s: %w", path, err)
	}

	if state.GetGlobal(KeepFn).Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is required but not defined in %s", KeepFn, path)
	}

	return func(s *stream.Stream) bool {
		keep, err := call(state, s)
		if err != nil {
			log.Warnf("filter script %s: %v", path, err)
			return false
		}
		return keep
	}, nil
}

// call evaluates Keep against one stream.
func call(state *lua.LState, s *stream.Stream) (bool, error) {
	err := state.CallByParam(lua.P{
		Fn:      state.GetGlobal(KeepFn),
		NRet:    1,
		Protect: true,
	}, streamToTable(state, s))
	if err != nil {
		return false, err
	}

	ret := state.Get(-1)
	state.Pop(1)

	return lua.LVAsBool(ret), nil
}

// streamToTable exposes a stream descriptor to Lua under the attribute names
// the engine sorts by, plus the track composition flags.
func streamToTable(state *lua.LState, s *stream.Stream) *lua.LTable {
	table := state.NewTable()

	state.SetField(table, "itag", lua.LNumber(s.Itag))
	state.SetField(table, "mime_type", lua.LString(s.MimeType))
	state.SetField(table, "type", lua.LString(s.Type()))
	state.SetField(table, "subtype", lua.LString(s.Subtype()))
	state.SetField(table, "resolution", lua.LString(s.Resolution))
	state.SetField(table, "fps", lua.LNumber(s.FPS))
	state.SetField(table, "bitrate", lua.LNumber(s.Bitrate))
	state.SetField(table, "video_codec", lua.LString(s.VideoCodec))
	state.SetField(table, "audio_codec", lua.LString(s.AudioCodec))
	state.SetField(table, "filesize", lua.LNumber(s.FileSize))
	state.SetField(table, "url", lua.LString(s.URL))
	state.SetField(table, "includes_audio_track", lua.LBool(s.IncludesAudioTrack))
	state.SetField(table, "includes_video_track", lua.LBool(s.IncludesVideoTrack))
	state.SetField(table, "is_progressive", lua.LBool(s.IsProgressive()))
	state.SetField(table, "is_adaptive", lua.LBool(s.IsAdaptive()))

	return table
}
