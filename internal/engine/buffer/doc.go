// Package buffer provides the text buffer the editor engine operates on.
//
// A Buffer holds the authoritative document text together with the view
// state that belongs to it: the selection and the scroll position. All
// positions are character offsets (Unicode code points), never bytes, so
// that offsets reported by the search engine can be applied directly.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	buf.InsertAt(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.DeleteRange(0, 7)          // "Beautiful World!"
//
//	buf.OnChange(func(c buffer.Change) {
//	    // called after every mutation, outside the buffer lock
//	})
//
// Line Endings:
//
// Text is stored exactly as given. "\n" and "\r\n" both end a line for
// PointAt, OffsetAt and Lines; a lone "\r" is an ordinary character.
//
// Change Notification:
//
// Every mutation (SetText, InsertAt, DeleteRange, Replace) bumps the buffer
// revision and notifies registered listeners after the lock is released.
// Listeners may therefore read the buffer, and may even mutate it, without
// deadlocking.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock.
package buffer
