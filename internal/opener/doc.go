// Package opener launches the operating system's default application for a file.
package opener
