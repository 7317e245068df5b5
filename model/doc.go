// Package model contains the plain data types shared by the marking
// services: the rubric and its single-character correction rule, the exam
// resource with its student id, question marking status and the identity of
// a teaching assistant worker.
//
// The types carry no synchronisation of their own; the shared state store
// in runtime/shared and the lock service in service/lock provide it.
package model
