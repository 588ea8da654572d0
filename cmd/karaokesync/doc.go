// Command karaokesync rebuilds karaoke subtitles from word-level alignment
// output and converts between the lyric formats around that step.
//
// Common invocations:
//
//	karaokesync transcript lyrics.txt > transcript.txt
//	karaokesync highlight aligned.json -o words.srt
//	karaokesync postprocess words.srt lyrics.txt -o karaoke.srt --mode line_plus_next
//	karaokesync lrc2srt song.lrc -o song.srt
//	karaokesync history list
package main
