// Package telegram implements the Telegram driven ports on top of the
// gotd MTProto client.
//
// The MTProto session lives in memory for the duration of one connection.
// The only durable form is the string session exported through the
// sessionstring codec, which is what ends up in the env file.
package telegram
