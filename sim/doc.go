// Package sim provides the process-lifecycle engine for the procsim virtual machine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - pcb.go: ProcessControlBlock lifecycle (New → Ready → Running → Exit) and state machine
//   - dispatch.go: how one operation (compute, I/O, memory) is executed and logged
//   - simulator.go: the run loop that selects, runs and exits processes one at a time
//
// # Architecture
//
// Data flows one way: a ConfigurationProfile and an OperationCatalog are loaded by
// collaborators, BuildProcessTable materializes one PCB per A(start) marker and orders
// them with a ProcessScheduler, and the Simulator drives each PCB through the Dispatcher,
// MemoryManager and Clock. LogLines go to a LogSink.
//
// Collaborators live in sub-packages:
//   - sim/profile/: configuration file grammar (legacy .cfg and YAML)
//   - sim/script/: operation script grammar
//   - sim/logsink/: Monitor/File/Both routing of the event log
//   - sim/trace/: decision trace recording
//
// # Key Interfaces
//
//   - Clock: reset, elapsed time, blocking wait (WallClock, VirtualClock)
//   - LogSink: receives LogLines in emission order
//   - ProcessScheduler: orders the process table (ArrivalOrderScheduler, SJFScheduler)
//
// Only one process is ever Running. Preemptive scheduling codes are accepted but
// behave as arrival order.
package sim
