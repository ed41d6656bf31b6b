/*
Package orm stores protobuf encoded records in a KVStore.

A record type implements Model: a struct with protobuf field tags, the
proto.Message methods and Validate. Records are encoded with the protobuf
reflection path, so no generated code is required.

ModelBucket keeps records of one type under a common key prefix.
Sequence hands out monotonic ids. IDList records keep an append-only list
of ids, used for secondary indexes such as owner to instrument ids.
*/
package orm
