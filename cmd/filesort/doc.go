// Command filesort sorts the files in a directory into category folders.
//
// It runs the organizer in-process for one-off use, offers a terminal
// directory picker, and can host the HTTP daemon in the foreground.
package main
