// Package productdb provides DynamoDB-backed storage for the product
// catalog.
//
// # Overview
//
// Every product is a flat item keyed by a randomly generated product_id
// (partition key, no sort key):
//
//   - product_id:       128-bit random UUID, assigned at creation
//   - product_category: free text
//   - product_title:    free text
//   - sum_rating:       numeric accumulator, zeroed at creation
//   - count_rating:     numeric accumulator, zeroed at creation
//
// A random partition key keeps items evenly distributed across partitions
// and lets concurrent creates proceed without coordination.
//
// # Getting Started
//
// Create a [Client] with [New], supplying an AWS config and the DynamoDB
// table name, then call [Client.Connect] before use:
//
//	client := productdb.New(&awsCfg, tableName)
//	if err := client.Connect(); err != nil {
//	    ...
//	}
//
// By default, [Client.Connect] creates an AWS SDK v2 DynamoDB client from
// the supplied [aws.Config]. Supply [WithAPI] to inject a custom or mock
// implementation.
//
// # Backups
//
// [Client.CreateBackup] invokes DynamoDB's native backup operation against
// the configured table, naming the backup product_backup_<YYYYMMDDHHMM>
// from the current UTC time. It does not retry.
//
// # Concurrency
//
// [Client] is safe for concurrent use by multiple goroutines once Connect
// has returned.
package productdb
