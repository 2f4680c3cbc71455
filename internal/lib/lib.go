// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains the blog stats aggregations, the Redis stats cache and
// background job processing (using Redis/Asynq).
package lib
