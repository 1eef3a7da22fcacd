// Package archive extracts downloaded zip archives.
//
//	members, err := archive.Extract("./downloads/720p.zip", "./downloads")
//	for _, name := range members {
//	    fmt.Println(name) // slash-separated, relative to the destination
//	}
//
// Members that would land outside the destination directory are rejected
// with ErrUnsafePath.
package archive
