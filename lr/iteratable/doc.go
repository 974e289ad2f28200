/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorithms are often more
straightforward to describe as set constructions and operations.

A Set may grow while it is iterated: elements added during an IterateOnce/Next
cycle will be visited before the cycle ends. This makes a Set a natural
work-list for fixed-point computations like the closure of LR items:

    C := S.Copy()
    C.IterateOnce()
    for C.Next() {
        item := C.Item()
        ...
        C.Add(newItem)   // will be visited by a later call to Next()
    }

Elements must be comparable (usable as map keys).

Unusually, all set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package iteratable
