/*
Package chunktable implements a run-length table which maps a monotonically
growing sequence of sample positions to the 64-bit ids of the physical
storage chunks holding them, without opening or scanning any chunk.

Data Structure Documentation

Table

A table is an ordered, append-only sequence of rows. Each row covers a
contiguous run of sample indices and carries the id of the chunk holding
that run.

    Table layout:
    +---------------------+---------------------+-------+---------------------+
    | chunk id, last idx  | chunk id, last idx  |  ...  | chunk id, last idx  |
    +---------------------+---------------------+-------+---------------------+

The last index column is strictly increasing: row 0 covers sample indices
[0, last0], row k covers (last(k-1), lastk]. Lookups binary-search the last
index column; with a single row the lookup is O(1), with n rows O(log n).

Serialized Buffer

A non-empty table serializes to a version tag followed by the raw row
array. An empty table serializes to an empty buffer.

    Buffer layout:
    +------------------------+-----------------+-------+-------+-----+-------+
    | version length (1 byte)| version (ASCII) | row 1 | row 2 | ... | row n |
    +------------------------+-----------------+-------+-------+-----+-------+

    Row:
    +------------------------+------------------------+
    | chunk id (8 bytes, LE) | last index (8 bytes, LE)|
    +------------------------+------------------------+

The last index column stores the two's-complement bits of the signed bound,
so the unregistered sentinel (-1) appears as 0xFFFFFFFFFFFFFFFF on the wire.
*/
package chunktable
