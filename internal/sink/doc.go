// Package sink delivers pipeline results to the host application.
//
// A result is described by a Payload: a list of suggestions, one lyrics
// document, a notice message, or the empty state shown after a failed
// search. Sinks render payloads for a particular destination:
//
//   - StreamSink: one XML document per line on an io.Writer (stdout in serve mode)
//   - CommandSink: runs a display command with the XML document as its last argument
//   - JSONSink: JSON for scripting
//   - MarkdownSink: Markdown for reading in a terminal or pasting into notes
//
// The XML form is the one the host player understands:
//
//	<suggestions><suggestion url="..." artist="..." title="..."/></suggestions>
//	<lyrics site="Astraweb" site_url="..." artist="..." title="...">body</lyrics>
//
// Text headed for the host (stream and command sinks) passes through Sanitize,
// which replaces double quotes and backticks with single quotes. The display
// command is executed directly, never through a shell.
package sink
