// Package chat holds the message model and the network boundary of the chat
// client: the HTTP call to the chat endpoint and the decoder that turns its
// loosely shaped JSON replies into one of four Reply variants.
//
// The decoder checks fields in a fixed order:
//
//   - a truthy `error` field yields a ServerError,
//   - a `response` object with `type: "product_list"` yields a ProductListReply,
//   - a `response` object with a truthy `message` yields a TextReply,
//   - anything else yields a RawReply holding the string form of `response`.
package chat
