package repository

// Package repository contains data access layer abstractions for the question
// bank and interview reports. Implementations live in subpackages (postgres).
